package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Product is the goods being packed. It is built by the caller for one run
// and is not modified while the run is in flight.
type Product struct {
	Name                  string    `json:"name"`
	WeightG               float64   `json:"weight_g"`
	MoisturePct           float64   `json:"moisture_pct"`
	RequiresRefrigeration bool      `json:"requires_refrigeration"`
	PackagingDate         time.Time `json:"packaging_date"`
	ExpiryDate            time.Time `json:"expiry_date"`
}

// PackagingSettings is the machine configuration for one run.
type PackagingSettings struct {
	Material            PackagingMaterial `json:"material"`
	VacuumLevel         VacuumLevel       `json:"vacuum_level"`
	SealingTemperatureC float64           `json:"sealing_temperature_c"`
	SealingTime         time.Duration     `json:"-"`
	UseNitrogenFlushing bool              `json:"use_nitrogen_flushing"`
}

type packagingSettingsJSON struct {
	Material            PackagingMaterial `json:"material"`
	VacuumLevel         VacuumLevel       `json:"vacuum_level"`
	SealingTemperatureC float64           `json:"sealing_temperature_c"`
	SealingTimeMs       int64             `json:"sealing_time_ms"`
	UseNitrogenFlushing bool              `json:"use_nitrogen_flushing"`
}

// MarshalJSON writes SealingTime as whole milliseconds.
func (s PackagingSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(packagingSettingsJSON{
		Material:            s.Material,
		VacuumLevel:         s.VacuumLevel,
		SealingTemperatureC: s.SealingTemperatureC,
		SealingTimeMs:       s.SealingTime.Milliseconds(),
		UseNitrogenFlushing: s.UseNitrogenFlushing,
	})
}

// UnmarshalJSON reads sealing_time_ms into SealingTime.
func (s *PackagingSettings) UnmarshalJSON(b []byte) error {
	var raw packagingSettingsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d, err := SealingTimeFromMillis(raw.SealingTimeMs)
	if err != nil {
		return err
	}
	*s = PackagingSettings{
		Material:            raw.Material,
		VacuumLevel:         raw.VacuumLevel,
		SealingTemperatureC: raw.SealingTemperatureC,
		SealingTime:         d,
		UseNitrogenFlushing: raw.UseNitrogenFlushing,
	}
	return nil
}

// maxSealingTimeMs is the largest millisecond count a time.Duration can hold.
const maxSealingTimeMs = math.MaxInt64 / int64(time.Millisecond)

// SealingTimeFromMillis converts sealing_time_ms to a Duration, refusing
// values that would overflow. Sign is left to the validator.
func SealingTimeFromMillis(ms int64) (time.Duration, error) {
	if ms > maxSealingTimeMs || ms < -maxSealingTimeMs {
		return 0, fmt.Errorf("sealing_time_ms %d out of range", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
