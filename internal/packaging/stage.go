package packaging

import (
	"context"
	"time"

	"vacuum_packaging/internal/models"
)

// StageName identifies a stage in events, metrics and run records.
type StageName string

const (
	StagePreHeat       StageName = "PREHEAT"
	StageEvacuate      StageName = "EVACUATE"
	StageNitrogenFlush StageName = "NITROGEN_FLUSH"
	StageSeal          StageName = "SEAL"
	StageCoolDown      StageName = "COOL_DOWN"
)

// Default equipment timings.
const (
	DefaultPreHeatDuration       = 2000 * time.Millisecond
	DefaultEvacuateDuration      = 3000 * time.Millisecond
	DefaultNitrogenFlushDuration = 1500 * time.Millisecond
	DefaultCoolDownDuration      = 2000 * time.Millisecond
)

// Timings holds the fixed durations of the equipment-timed stages.
// The seal stage is timed by PackagingSettings.SealingTime instead.
type Timings struct {
	PreHeat       time.Duration
	Evacuate      time.Duration
	NitrogenFlush time.Duration
	CoolDown      time.Duration
}

// DefaultTimings returns the machine's nominal stage durations.
func DefaultTimings() Timings {
	return Timings{
		PreHeat:       DefaultPreHeatDuration,
		Evacuate:      DefaultEvacuateDuration,
		NitrogenFlush: DefaultNitrogenFlushDuration,
		CoolDown:      DefaultCoolDownDuration,
	}
}

// Stage is one timed physical operation of the packaging sequence.
// Run returns nil once the operation completed. Stages never undo
// effects of earlier stages.
type Stage interface {
	Name() StageName
	Duration() time.Duration
	// Detail describes the operation for observers, e.g. the target temperature.
	Detail() map[string]any
	Run(ctx context.Context, clock Clock) error
}

// PreHeatStage brings the sealing bar up to temperature. The wait is fixed;
// the temperature is reported but does not change it.
type PreHeatStage struct {
	TemperatureC float64
	Wait         time.Duration
}

func PreHeat(temperatureC float64, t Timings) *PreHeatStage {
	return &PreHeatStage{TemperatureC: temperatureC, Wait: t.PreHeat}
}

func (s *PreHeatStage) Name() StageName         { return StagePreHeat }
func (s *PreHeatStage) Duration() time.Duration { return s.Wait }
func (s *PreHeatStage) Detail() map[string]any {
	return map[string]any{"temperature_c": s.TemperatureC}
}
func (s *PreHeatStage) Run(ctx context.Context, clock Clock) error {
	return clock.Sleep(ctx, s.Wait)
}

// EvacuateStage draws the vacuum. The wait is fixed regardless of level.
type EvacuateStage struct {
	Level models.VacuumLevel
	Wait  time.Duration
}

func CreateVacuum(level models.VacuumLevel, t Timings) *EvacuateStage {
	return &EvacuateStage{Level: level, Wait: t.Evacuate}
}

func (s *EvacuateStage) Name() StageName         { return StageEvacuate }
func (s *EvacuateStage) Duration() time.Duration { return s.Wait }
func (s *EvacuateStage) Detail() map[string]any {
	return map[string]any{"vacuum_pct": s.Level.Percent()}
}
func (s *EvacuateStage) Run(ctx context.Context, clock Clock) error {
	return clock.Sleep(ctx, s.Wait)
}

// NitrogenFlushStage displaces residual air with nitrogen.
type NitrogenFlushStage struct {
	Wait time.Duration
}

func FlushNitrogen(t Timings) *NitrogenFlushStage {
	return &NitrogenFlushStage{Wait: t.NitrogenFlush}
}

func (s *NitrogenFlushStage) Name() StageName         { return StageNitrogenFlush }
func (s *NitrogenFlushStage) Duration() time.Duration { return s.Wait }
func (s *NitrogenFlushStage) Detail() map[string]any  { return nil }
func (s *NitrogenFlushStage) Run(ctx context.Context, clock Clock) error {
	return clock.Sleep(ctx, s.Wait)
}

// SealStage applies the sealing bar for exactly the requested sealing time.
type SealStage struct {
	TemperatureC float64
	SealingTime  time.Duration
}

func SealPackage(s models.PackagingSettings) *SealStage {
	return &SealStage{TemperatureC: s.SealingTemperatureC, SealingTime: s.SealingTime}
}

func (s *SealStage) Name() StageName         { return StageSeal }
func (s *SealStage) Duration() time.Duration { return s.SealingTime }
func (s *SealStage) Detail() map[string]any {
	return map[string]any{
		"temperature_c":   s.TemperatureC,
		"sealing_time_ms": s.SealingTime.Milliseconds(),
	}
}
func (s *SealStage) Run(ctx context.Context, clock Clock) error {
	return clock.Sleep(ctx, s.SealingTime)
}

// CoolDownStage lets the seal set before the chamber opens.
type CoolDownStage struct {
	Wait time.Duration
}

func CoolDown(t Timings) *CoolDownStage {
	return &CoolDownStage{Wait: t.CoolDown}
}

func (s *CoolDownStage) Name() StageName         { return StageCoolDown }
func (s *CoolDownStage) Duration() time.Duration { return s.Wait }
func (s *CoolDownStage) Detail() map[string]any  { return nil }
func (s *CoolDownStage) Run(ctx context.Context, clock Clock) error {
	return clock.Sleep(ctx, s.Wait)
}

// Pipeline builds the ordered stages for one run.
type Pipeline func(s models.PackagingSettings, t Timings) []Stage

// StandardPipeline is preheat, evacuate, optional nitrogen flush, seal, cool down.
func StandardPipeline(s models.PackagingSettings, t Timings) []Stage {
	stages := []Stage{
		PreHeat(s.SealingTemperatureC, t),
		CreateVacuum(s.VacuumLevel, t),
	}
	if s.UseNitrogenFlushing {
		stages = append(stages, FlushNitrogen(t))
	}
	return append(stages, SealPackage(s), CoolDown(t))
}
