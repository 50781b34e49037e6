package packaging

import (
	"errors"
	"fmt"

	"vacuum_packaging/internal/models"
)

// Sealing element safety range, °C, inclusive.
const (
	MinSealingTemperatureC = 120.0
	MaxSealingTemperatureC = 180.0
)

// MaxMoistureForUltraPct is the highest moisture content allowed with ultra vacuum.
const MaxMoistureForUltraPct = 80.0

// ErrConfigurationRejected wraps every validation failure returned by Check and Prepare.
var ErrConfigurationRejected = errors.New("packaging configuration rejected")

// Rule violations. Check joins every rule that failed.
var (
	ErrSealingTemperatureOutOfRange = fmt.Errorf("sealing temperature must be within [%.0f, %.0f] °C", MinSealingTemperatureC, MaxSealingTemperatureC)
	ErrUltraVacuumHighMoisture      = fmt.Errorf("ultra vacuum is not allowed for moisture above %.0f%%", MaxMoistureForUltraPct)
	ErrMaterialNotBarrier           = errors.New("refrigerated products require HIGH_BARRIER or AL_PE material")
	ErrUnknownMaterial              = errors.New("unknown packaging material")
	ErrUnknownVacuumLevel           = errors.New("unknown vacuum level")
	ErrExpiryBeforePackaging        = errors.New("expiry date is before packaging date")
	ErrNonPositiveSealingTime       = errors.New("sealing time must be positive")
)

// Validate reports whether the settings are safe to run for the product.
func Validate(p models.Product, s models.PackagingSettings) bool {
	return len(violations(p, s)) == 0
}

// Check returns nil when Validate would return true. Otherwise the error
// matches ErrConfigurationRejected and each violated rule via errors.Is.
func Check(p models.Product, s models.PackagingSettings) error {
	v := violations(p, s)
	if len(v) == 0 {
		return nil
	}
	return &RejectedError{Violations: v}
}

// Violations unpacks the rule errors from a Check or Prepare error.
func Violations(err error) []error {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Violations
	}
	return nil
}

func violations(p models.Product, s models.PackagingSettings) []error {
	var out []error

	// Written so that NaN fails the range.
	if !(s.SealingTemperatureC >= MinSealingTemperatureC && s.SealingTemperatureC <= MaxSealingTemperatureC) {
		out = append(out, ErrSealingTemperatureOutOfRange)
	}
	if s.SealingTime <= 0 {
		out = append(out, ErrNonPositiveSealingTime)
	}
	if !s.VacuumLevel.Valid() {
		out = append(out, ErrUnknownVacuumLevel)
	}
	if p.MoisturePct > MaxMoistureForUltraPct && s.VacuumLevel == models.VacuumUltra {
		out = append(out, ErrUltraVacuumHighMoisture)
	}
	if !s.Material.Valid() {
		out = append(out, ErrUnknownMaterial)
	} else if p.RequiresRefrigeration && !s.Material.IsBarrier() {
		out = append(out, ErrMaterialNotBarrier)
	}
	// Only enforced when the caller supplied both dates.
	if !p.PackagingDate.IsZero() && !p.ExpiryDate.IsZero() && p.ExpiryDate.Before(p.PackagingDate) {
		out = append(out, ErrExpiryBeforePackaging)
	}
	return out
}

// RejectedError carries the violated rules of a rejected configuration.
type RejectedError struct {
	Violations []error
}

func (e *RejectedError) Error() string {
	return ErrConfigurationRejected.Error() + ": " + errors.Join(e.Violations...).Error()
}

// Is matches ErrConfigurationRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrConfigurationRejected
}

// Unwrap exposes the individual violations to errors.Is.
func (e *RejectedError) Unwrap() []error {
	return e.Violations
}
