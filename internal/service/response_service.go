package service

import (
	"time"

	"vacuum_packaging/internal/models"
)

// LogFilter supports history filtering by time range, type and run.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", "RUN_STARTED", "STAGE_FAILED", "REJECTED", ...
	RunID string
}

// ValidationReport is the result of a dry-run validation.
type ValidationReport struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
}

// Recommendation is the suggested sealing time for a film.
type Recommendation struct {
	Material      models.PackagingMaterial `json:"material"`
	ThicknessMM   float64                  `json:"thickness_mm"`
	SealingTimeMS int64                    `json:"sealing_time_ms"`
}
