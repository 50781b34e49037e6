package models

import "time"

// PackagingEvent is a single log entry.
type PackagingEvent struct {
	EventID     string    `json:"event_id"`
	RunID       string    `json:"run_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`            // RUN_STARTED | STAGE_STARTED | STAGE_COMPLETED | STAGE_FAILED | RUN_COMPLETED | RUN_FAILED | REJECTED | BUSY
	Stage       string    `json:"stage,omitempty"` // PREHEAT | EVACUATE | NITROGEN_FLUSH | SEAL | COOL_DOWN
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
