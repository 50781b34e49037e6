package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/repository"
)

// fakeStateRepo satisfies repository.StateRepo.
type fakeStateRepo struct {
	mu         sync.Mutex
	loadResp   models.MachineState
	loadErr    error
	saveErr    error
	savedCalls []models.MachineState
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.MachineState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadResp, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.MachineState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.savedCalls = append(f.savedCalls, s)
	return f.saveErr
}

func (f *fakeStateRepo) saved() []models.MachineState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MachineState(nil), f.savedCalls...)
}

// fakeEventRepo satisfies repository.EventRepo and records both sides.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotQuery repository.EventQuery
	appended []models.PackagingEvent

	// configured outputs
	events    []models.PackagingEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, q repository.EventQuery) ([]models.PackagingEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotQuery = q
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.PackagingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return f.appendErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

// fakeRunRepo is an in-memory repository.RunRepo.
type fakeRunRepo struct {
	mu        sync.Mutex
	runs      map[string]models.PackagingRun
	createErr error
	getErr    error
	lastLimit int
	finished  chan string
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: map[string]models.PackagingRun{}, finished: make(chan string, 8)}
}

func (f *fakeRunRepo) Create(ctx context.Context, r models.PackagingRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.runs[r.ID] = r
	return nil
}

func (f *fakeRunRepo) Finish(ctx context.Context, id string, o repository.RunOutcome) error {
	f.mu.Lock()
	r, ok := f.runs[id]
	if !ok {
		f.mu.Unlock()
		return repository.ErrRunNotFound
	}
	r.Outcome = o.Outcome
	r.FailedStage = o.FailedStage
	r.Error = o.Error
	at := o.FinishedAt
	r.FinishedAt = &at
	f.runs[id] = r
	f.mu.Unlock()
	f.finished <- id
	return nil
}

func (f *fakeRunRepo) Get(ctx context.Context, id string) (*models.PackagingRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRunRepo) List(ctx context.Context, limit int) ([]models.PackagingRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	out := make([]models.PackagingRun, 0, len(f.runs))
	for _, r := range f.runs {
		out = append(out, r)
	}
	return out, nil
}

// instantClock never waits; a non-nil gate holds every stage until closed.
type instantClock struct {
	mu   sync.Mutex
	now  time.Time
	gate chan struct{}
}

func newInstantClock() *instantClock {
	return &instantClock{now: time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)}
}

func (c *instantClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *instantClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.now = c.now.Add(d)
	gate := c.gate
	c.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	return ctx.Err()
}

// fixedSnapshot satisfies the monitoring snapshotter.
type fixedSnapshot packaging.Snapshot

func (f fixedSnapshot) Snapshot() packaging.Snapshot { return packaging.Snapshot(f) }

func frozenFish() models.Product {
	packed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return models.Product{
		Name:                  "Frozen fish fillet",
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

var errDBDown = errors.New("db down")
