package models

import "time"

// Machine states as persisted and reported over the API.
const (
	MachineIdle    = "IDLE"
	MachineRunning = "RUNNING"
)

// MachineState is the current snapshot of the packaging machine.
type MachineState struct {
	ID           int       `json:"id"`
	State        string    `json:"state"`                   // IDLE | RUNNING
	RunID        string    `json:"run_id,omitempty"`        // run in flight, or the last one
	CurrentStage string    `json:"current_stage,omitempty"` // empty when idle
	LastOutcome  string    `json:"last_outcome,omitempty"`  // SUCCESS | STAGE_FAILURE
	LastError    string    `json:"last_error,omitempty"`
	IsRunning    bool      `json:"is_running"`
	UpdatedAt    time.Time `json:"updated_at"`
}
