package models

import "time"

// PackagingRun is the history record of one accepted run.
type PackagingRun struct {
	ID          string            `json:"id"`
	OperatorID  int               `json:"operator_id,omitempty"`
	Product     Product           `json:"product"`
	Settings    PackagingSettings `json:"settings"`
	Outcome     string            `json:"outcome,omitempty"` // empty while running
	FailedStage string            `json:"failed_stage,omitempty"`
	Error       string            `json:"error,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  *time.Time        `json:"finished_at,omitempty"`
}
