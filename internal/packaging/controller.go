package packaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"vacuum_packaging/internal/models"

	"github.com/google/uuid"
)

// State is the controller's run token.
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return models.MachineRunning
	}
	return models.MachineIdle
}

// Outcome tags the result of a packaging request.
type Outcome string

const (
	OutcomeSuccess               Outcome = "SUCCESS"
	OutcomeStageFailure          Outcome = "STAGE_FAILURE"
	OutcomeConfigurationRejected Outcome = "CONFIGURATION_REJECTED"
	OutcomeBusy                  Outcome = "BUSY"
)

var (
	// ErrMachineBusy is returned when a run is already in flight.
	ErrMachineBusy = errors.New("machine busy: a packaging run is already in progress")
	// ErrStageFault wraps a panic raised inside a stage.
	ErrStageFault = errors.New("stage fault")
	// ErrRunConsumed is the cause reported when a Run is executed twice or after Abandon.
	ErrRunConsumed = errors.New("run already executed or abandoned")
)

// Result is the outcome of one packaging request.
type Result struct {
	RunID       string
	Outcome     Outcome
	FailedStage StageName // set for OutcomeStageFailure
	Completed   []StageName
	Cause       error
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Succeeded reports whether validation passed and every stage completed.
func (r Result) Succeeded() bool { return r.Outcome == OutcomeSuccess }

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	State        State
	RunID        string
	CurrentStage StageName
}

// Controller validates packaging requests and executes their stages in order.
// At most one run is in flight per Controller.
type Controller struct {
	clock    Clock
	timings  Timings
	pipeline Pipeline
	observer Observer

	state atomic.Int32

	mu           sync.RWMutex
	runID        string
	currentStage StageName
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source stages wait on.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithTimings overrides the fixed stage durations.
func WithTimings(t Timings) Option {
	return func(ctl *Controller) { ctl.timings = t }
}

// WithPipeline replaces the stage builder, e.g. to drive real equipment.
func WithPipeline(p Pipeline) Option {
	return func(ctl *Controller) { ctl.pipeline = p }
}

// WithObservers registers observers for controller events.
func WithObservers(obs ...Observer) Option {
	return func(ctl *Controller) {
		if existing, ok := ctl.observer.(MultiObserver); ok {
			ctl.observer = append(existing, obs...)
			return
		}
		ctl.observer = MultiObserver(obs)
	}
}

// NewController returns an idle controller using the real clock and default timings.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		clock:    RealClock{},
		timings:  DefaultTimings(),
		pipeline: StandardPipeline,
		observer: MultiObserver(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate reports whether the configuration is safe to run.
func (c *Controller) Validate(p models.Product, s models.PackagingSettings) bool {
	return Validate(p, s)
}

// RecommendedSealingTime returns the suggested sealing time for the material.
func (c *Controller) RecommendedSealingTime(m models.PackagingMaterial) time.Duration {
	return RecommendedSealingTime(m)
}

// IsRunning reports whether a run currently holds the machine.
func (c *Controller) IsRunning() bool {
	return State(c.state.Load()) == StateRunning
}

// Snapshot returns the current state, run id and stage.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		State:        State(c.state.Load()),
		RunID:        c.runID,
		CurrentStage: c.currentStage,
	}
}

// StartPackaging validates the request and runs every stage to completion.
//
// A rejected configuration returns OutcomeConfigurationRejected and an error
// matching ErrConfigurationRejected; the machine never leaves Idle. A second
// concurrent call returns OutcomeBusy and ErrMachineBusy. Stage failures are
// not errors: they are reported as OutcomeStageFailure with the cause.
func (c *Controller) StartPackaging(ctx context.Context, p models.Product, s models.PackagingSettings) (Result, error) {
	run, err := c.Prepare(p, s)
	if err != nil {
		return rejectedResult(err), err
	}
	return run.Execute(ctx), nil
}

func rejectedResult(err error) Result {
	if errors.Is(err, ErrMachineBusy) {
		return Result{Outcome: OutcomeBusy, Cause: err}
	}
	return Result{Outcome: OutcomeConfigurationRejected, Cause: err}
}

// Prepare validates the request and claims the machine. The caller must
// either Execute or Abandon the returned run.
func (c *Controller) Prepare(p models.Product, s models.PackagingSettings) (*Run, error) {
	if err := Check(p, s); err != nil {
		c.emit(Event{Kind: EventRunRejected, At: c.clock.Now(), Err: err})
		return nil, err
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		c.emit(Event{
			Kind:   EventRunBusy,
			At:     c.clock.Now(),
			Err:    ErrMachineBusy,
			Detail: map[string]any{"holder_run_id": c.Snapshot().RunID},
		})
		return nil, ErrMachineBusy
	}

	run := &Run{
		ID:         uuid.NewString(),
		Product:    p,
		Settings:   s,
		controller: c,
	}
	run.stages = c.pipeline(s, c.timings)

	c.mu.Lock()
	c.runID = run.ID
	c.currentStage = ""
	c.mu.Unlock()
	return run, nil
}

// release returns the machine to Idle.
func (c *Controller) release() {
	c.mu.Lock()
	c.currentStage = ""
	c.mu.Unlock()
	c.state.Store(int32(StateIdle))
}

func (c *Controller) setStage(name StageName) {
	c.mu.Lock()
	c.currentStage = name
	c.mu.Unlock()
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer.Observe(e)
	}
}

// Run is a validated request holding the machine.
type Run struct {
	ID       string
	Product  models.Product
	Settings models.PackagingSettings

	controller *Controller
	stages     []Stage
	consumed   atomic.Bool
}

// Stages returns the stage names this run will execute, in order.
func (r *Run) Stages() []StageName {
	names := make([]StageName, 0, len(r.stages))
	for _, st := range r.stages {
		names = append(names, st.Name())
	}
	return names
}

// Abandon releases the machine without running any stage.
func (r *Run) Abandon() {
	if r.consumed.CompareAndSwap(false, true) {
		r.controller.release()
	}
}

// Execute runs the stages strictly in order and stops at the first failure.
// The machine is back to Idle when Execute returns.
func (r *Run) Execute(ctx context.Context) Result {
	c := r.controller
	res := Result{RunID: r.ID, StartedAt: c.clock.Now()}
	if !r.consumed.CompareAndSwap(false, true) {
		res.Outcome = OutcomeStageFailure
		res.Cause = ErrRunConsumed
		res.FinishedAt = res.StartedAt
		return res
	}
	defer c.release()

	c.emit(Event{
		Kind:  EventRunStarted,
		RunID: r.ID,
		At:    res.StartedAt,
		Detail: map[string]any{
			"product":  r.Product.Name,
			"material": r.Settings.Material.String(),
			"stages":   len(r.stages),
		},
	})

	for _, st := range r.stages {
		if err := c.runStage(ctx, r.ID, st); err != nil {
			res.Outcome = OutcomeStageFailure
			res.FailedStage = st.Name()
			res.Cause = err
			res.FinishedAt = c.clock.Now()
			c.emit(Event{
				Kind:    EventRunFailed,
				RunID:   r.ID,
				Stage:   st.Name(),
				At:      res.FinishedAt,
				Elapsed: res.FinishedAt.Sub(res.StartedAt),
				Err:     err,
			})
			return res
		}
		res.Completed = append(res.Completed, st.Name())
	}

	res.Outcome = OutcomeSuccess
	res.FinishedAt = c.clock.Now()
	c.emit(Event{
		Kind:    EventRunCompleted,
		RunID:   r.ID,
		At:      res.FinishedAt,
		Elapsed: res.FinishedAt.Sub(res.StartedAt),
	})
	return res
}

func (c *Controller) runStage(ctx context.Context, runID string, st Stage) (err error) {
	name := st.Name()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s not started: %w", name, err)
	}

	c.setStage(name)
	started := c.clock.Now()
	c.emit(Event{Kind: EventStageStarted, RunID: runID, Stage: name, At: started, Detail: st.Detail()})

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w in %s: %v", ErrStageFault, name, p)
		}
		done := c.clock.Now()
		ev := Event{RunID: runID, Stage: name, At: done, Elapsed: done.Sub(started), Detail: st.Detail()}
		if err != nil {
			ev.Kind = EventStageFailed
			ev.Err = err
		} else {
			ev.Kind = EventStageCompleted
		}
		c.emit(ev)
	}()

	return st.Run(ctx, c.clock)
}
