package packaging

import (
	"context"
	"sync"
	"time"

	"vacuum_packaging/internal/models"
)

// fakeClock advances instantly and records every requested wait.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	// gate, when set, blocks Sleep until closed so tests can hold a run mid-stage.
	gate chan struct{}
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	f.now = f.now.Add(d)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ctx.Err()
}

func (f *fakeClock) recorded() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.sleeps...)
}

// eventLog is an Observer that keeps everything it sees.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) Observe(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func (l *eventLog) startedStages() []StageName {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []StageName
	for _, e := range l.events {
		if e.Kind == EventStageStarted {
			out = append(out, e.Stage)
		}
	}
	return out
}

// frozenFish is the chilled product used throughout the controller tests.
func frozenFish() models.Product {
	packed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return models.Product{
		Name:                  "frozen fish fillet",
		WeightG:               500,
		MoisturePct:           75,
		RequiresRefrigeration: true,
		PackagingDate:         packed,
		ExpiryDate:            packed.AddDate(0, 0, 90),
	}
}

func barrierSettings() models.PackagingSettings {
	return models.PackagingSettings{
		Material:            models.MaterialHighBarrier,
		VacuumLevel:         models.VacuumHigh,
		SealingTemperatureC: 150,
		SealingTime:         1200 * time.Millisecond,
		UseNitrogenFlushing: true,
	}
}

func equalStages(a, b []StageName) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
