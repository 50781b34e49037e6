package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vacuum_packaging/internal/logger"
	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/repository"
)

const recordTimeout = 3 * time.Second

// Recorder persists controller events to the event log and keeps the
// machine_state row in step with the run. It is registered as a
// packaging.Observer, so it runs on the run's goroutine.
type Recorder struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger

	mu    sync.Mutex
	state models.MachineState
}

var _ packaging.Observer = (*Recorder)(nil)

func NewRecorder(stateRepo repository.StateRepo, eventRepo repository.EventRepo, log *logger.Logger) *Recorder {
	return &Recorder{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		log:       log.Component("recorder"),
		state:     models.MachineState{ID: 1, State: models.MachineIdle},
	}
}

// Restore loads the persisted state. A row left RUNNING by a previous
// process is rewritten as IDLE: nothing survives a restart.
func (r *Recorder) Restore(ctx context.Context) error {
	st, err := r.stateRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load machine state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if st.ID == 0 {
		r.state = models.MachineState{ID: 1, State: models.MachineIdle, UpdatedAt: time.Now().UTC()}
		return r.stateRepo.Save(ctx, r.state)
	}
	r.state = st
	if !st.IsRunning && st.State != models.MachineRunning {
		return nil
	}

	if r.log != nil {
		r.log.Warnw("interrupted_run_found", "run_id", st.RunID, "stage", st.CurrentStage)
	}
	r.state.State = models.MachineIdle
	r.state.IsRunning = false
	r.state.CurrentStage = ""
	r.state.LastOutcome = string(packaging.OutcomeStageFailure)
	r.state.LastError = "interrupted by restart"
	r.state.UpdatedAt = time.Now().UTC()
	return r.stateRepo.Save(ctx, r.state)
}

// Observe implements packaging.Observer.
func (r *Recorder) Observe(e packaging.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := r.eventRepo.Append(ctx, toPackagingEvent(e)); err != nil && r.log != nil {
		r.log.Errorw("event_append_failed", "type", e.Kind, "run_id", e.RunID, "err", err)
	}

	st, changed := r.apply(e)
	if !changed {
		return
	}
	if err := r.stateRepo.Save(ctx, st); err != nil && r.log != nil {
		r.log.Errorw("state_save_failed", "type", e.Kind, "run_id", e.RunID, "err", err)
	}
}

// apply folds the event into the in-memory state and reports whether it changed.
func (r *Recorder) apply(e packaging.Event) (models.MachineState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e.Kind {
	case packaging.EventRunStarted:
		r.state.State = models.MachineRunning
		r.state.IsRunning = true
		r.state.RunID = e.RunID
		r.state.CurrentStage = ""
	case packaging.EventStageStarted:
		r.state.CurrentStage = string(e.Stage)
	case packaging.EventRunCompleted:
		r.state.State = models.MachineIdle
		r.state.IsRunning = false
		r.state.CurrentStage = ""
		r.state.LastOutcome = string(packaging.OutcomeSuccess)
		r.state.LastError = ""
	case packaging.EventRunFailed:
		r.state.State = models.MachineIdle
		r.state.IsRunning = false
		r.state.CurrentStage = ""
		r.state.LastOutcome = string(packaging.OutcomeStageFailure)
		r.state.LastError = errString(e.Err)
	default:
		return models.MachineState{}, false
	}
	r.state.ID = 1
	r.state.UpdatedAt = e.At.UTC()
	return r.state, true
}

func toPackagingEvent(e packaging.Event) models.PackagingEvent {
	meta := make(map[string]any, len(e.Detail)+2)
	for k, v := range e.Detail {
		meta[k] = v
	}
	if e.Elapsed > 0 {
		meta["elapsed_ms"] = e.Elapsed.Milliseconds()
	}

	var desc string
	switch e.Kind {
	case packaging.EventRunStarted:
		desc = "Packaging run started"
	case packaging.EventStageStarted:
		desc = fmt.Sprintf("Stage %s started", e.Stage)
	case packaging.EventStageCompleted:
		desc = fmt.Sprintf("Stage %s completed", e.Stage)
	case packaging.EventStageFailed:
		desc = fmt.Sprintf("Stage %s failed: %s", e.Stage, errString(e.Err))
	case packaging.EventRunCompleted:
		desc = "Packaging run completed"
	case packaging.EventRunFailed:
		desc = fmt.Sprintf("Packaging run failed at %s: %s", e.Stage, errString(e.Err))
	case packaging.EventRunRejected:
		desc = "Configuration rejected"
		var reasons []string
		for _, v := range packaging.Violations(e.Err) {
			reasons = append(reasons, v.Error())
		}
		meta["violations"] = reasons
	case packaging.EventRunBusy:
		desc = "Request refused: machine busy"
	default:
		desc = string(e.Kind)
	}

	ev := models.PackagingEvent{
		RunID:       e.RunID,
		OccurredAt:  e.At,
		Type:        string(e.Kind),
		Stage:       string(e.Stage),
		Description: desc,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	return ev
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
