package models

import (
	"fmt"
	"strings"
)

// PackagingMaterial is the film the package is made of.
type PackagingMaterial string

const (
	MaterialPAPE        PackagingMaterial = "PA_PE"        // nylon / polyethylene laminate
	MaterialPETPE       PackagingMaterial = "PET_PE"       // PET / polyethylene laminate
	MaterialPVDC        PackagingMaterial = "PVDC"         // polyvinylidene chloride
	MaterialALPE        PackagingMaterial = "AL_PE"        // aluminium foil / polyethylene laminate
	MaterialHighBarrier PackagingMaterial = "HIGH_BARRIER" // high barrier film
)

// materialThicknessMM is the film thickness per material, in millimetres.
// It is read-only after package init and shared by every controller.
var materialThicknessMM = map[PackagingMaterial]float64{
	MaterialPAPE:        0.09,
	MaterialPETPE:       0.12,
	MaterialPVDC:        0.08,
	MaterialALPE:        0.15,
	MaterialHighBarrier: 0.18,
}

// Materials lists every supported material in declaration order.
func Materials() []PackagingMaterial {
	return []PackagingMaterial{MaterialPAPE, MaterialPETPE, MaterialPVDC, MaterialALPE, MaterialHighBarrier}
}

// Valid reports whether m is one of the supported materials.
func (m PackagingMaterial) Valid() bool {
	_, ok := materialThicknessMM[m]
	return ok
}

// ThicknessMM returns the film thickness and false for an unknown material.
func (m PackagingMaterial) ThicknessMM() (float64, bool) {
	t, ok := materialThicknessMM[m]
	return t, ok
}

// IsBarrier reports whether the film is rated for chilled or frozen goods.
func (m PackagingMaterial) IsBarrier() bool {
	return m == MaterialHighBarrier || m == MaterialALPE
}

func (m PackagingMaterial) String() string { return string(m) }

// ParseMaterial accepts canonical names case-insensitively; "HighBarrier" is an alias.
func ParseMaterial(s string) (PackagingMaterial, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if norm == "HIGHBARRIER" {
		norm = string(MaterialHighBarrier)
	}
	m := PackagingMaterial(norm)
	if !m.Valid() {
		return "", fmt.Errorf("unknown packaging material %q", s)
	}
	return m, nil
}
