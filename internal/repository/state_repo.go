package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vacuum_packaging/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	machineStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO machine_state (id, state, run_id, stage, last_outcome, last_error, running, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state=excluded.state,
			run_id=excluded.run_id,
			stage=excluded.stage,
			last_outcome=excluded.last_outcome,
			last_error=excluded.last_error,
			running=excluded.running,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, state, run_id, stage, last_outcome, last_error, running, updated_at
		FROM machine_state WHERE id=?
	`
)

// Save updates or inserts the machine_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.MachineState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		machineStateRowID,
		state.State,
		state.RunID,
		state.CurrentStage,
		state.LastOutcome,
		state.LastError,
		state.IsRunning,
		tsUTC,
	)
	return err
}

// Load fetches the single machine_state row. A zero ID means nothing was saved yet.
func (r *StateSQLite) Load(ctx context.Context) (models.MachineState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, machineStateRowID)

	var s models.MachineState
	if err := row.Scan(
		&s.ID,
		&s.State,
		&s.RunID,
		&s.CurrentStage,
		&s.LastOutcome,
		&s.LastError,
		&s.IsRunning,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MachineState{}, nil // no state yet
		}
		return models.MachineState{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
