package models

import (
	"fmt"
	"strconv"
	"strings"
)

// VacuumLevel is the target share of atmosphere evacuated, in percent.
type VacuumLevel int

const (
	VacuumLight  VacuumLevel = 80
	VacuumMedium VacuumLevel = 90
	VacuumHigh   VacuumLevel = 95
	VacuumUltra  VacuumLevel = 99
)

var vacuumLevelNames = map[VacuumLevel]string{
	VacuumLight:  "LIGHT",
	VacuumMedium: "MEDIUM",
	VacuumHigh:   "HIGH",
	VacuumUltra:  "ULTRA",
}

// Percent returns the target vacuum percentage.
func (v VacuumLevel) Percent() int { return int(v) }

// Valid reports whether v is one of the four supported levels.
func (v VacuumLevel) Valid() bool {
	_, ok := vacuumLevelNames[v]
	return ok
}

func (v VacuumLevel) String() string {
	if name, ok := vacuumLevelNames[v]; ok {
		return name
	}
	return "VacuumLevel(" + strconv.Itoa(int(v)) + ")"
}

// MarshalText encodes the level by name so JSON payloads stay readable.
func (v VacuumLevel) MarshalText() ([]byte, error) {
	name, ok := vacuumLevelNames[v]
	if !ok {
		return nil, fmt.Errorf("unknown vacuum level %d", int(v))
	}
	return []byte(name), nil
}

// UnmarshalText accepts a level name or its percentage ("HIGH" or "95").
func (v *VacuumLevel) UnmarshalText(b []byte) error {
	lvl, err := ParseVacuumLevel(string(b))
	if err != nil {
		return err
	}
	*v = lvl
	return nil
}

// ParseVacuumLevel parses a level name (case-insensitive) or percentage.
func ParseVacuumLevel(s string) (VacuumLevel, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for lvl, name := range vacuumLevelNames {
		if name == norm {
			return lvl, nil
		}
	}
	if n, err := strconv.Atoi(norm); err == nil && VacuumLevel(n).Valid() {
		return VacuumLevel(n), nil
	}
	return 0, fmt.Errorf("unknown vacuum level %q", s)
}
