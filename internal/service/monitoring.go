package service

import (
	"context"
	"time"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/repository"
)

// snapshotter is the live view of the controller.
type snapshotter interface {
	Snapshot() packaging.Snapshot
}

type MonitoringService struct {
	stateRepo repository.StateRepo
	live      snapshotter
}

func NewMonitoringService(stateRepo repository.StateRepo, live snapshotter) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, live: live}
}

// GetState returns the persisted machine state with the live running flag,
// run id and stage laid over it. The persisted row may lag the controller by
// one event; the controller is authoritative for whether a run holds the machine.
func (s *MonitoringService) GetState(ctx context.Context) (models.MachineState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.MachineState{}, err
	}
	if state.ID == 0 {
		state = baselineState()
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)

	if s.live == nil {
		return state, nil
	}
	snap := s.live.Snapshot()
	state.State = snap.State.String()
	state.IsRunning = snap.State == packaging.StateRunning
	if state.IsRunning {
		state.RunID = snap.RunID
		state.CurrentStage = string(snap.CurrentStage)
	} else {
		state.CurrentStage = ""
	}
	return state, nil
}

// baselineState is reported before anything has been persisted.
func baselineState() models.MachineState {
	return models.MachineState{
		ID:        1, // single-row table
		State:     models.MachineIdle,
		IsRunning: false,
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
