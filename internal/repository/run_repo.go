package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vacuum_packaging/internal/models"
)

// ErrRunNotFound is returned by Finish for an unknown run id.
var ErrRunNotFound = errors.New("packaging run not found")

const defaultRunListLimit = 50

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO packaging_runs (id, operator_id, product, settings, outcome, failed_stage, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, '', '', '', ?, NULL)
	`

	finishRunSQL = `
		UPDATE packaging_runs SET outcome=?, failed_stage=?, error=?, finished_at=?
		WHERE id=?
	`

	selectRunColumns = `SELECT id, operator_id, product, settings, outcome, failed_stage, error, started_at, finished_at FROM packaging_runs`
)

// Create inserts a run that has been accepted but not finished.
func (r *RunSQLite) Create(ctx context.Context, run models.PackagingRun) error {
	product, err := json.Marshal(run.Product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	settings, err := json.Marshal(run.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}

	if _, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.OperatorID,
		string(product),
		string(settings),
		started.UTC(),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// Finish records the outcome of a run.
func (r *RunSQLite) Finish(ctx context.Context, id string, o RunOutcome) error {
	finished := o.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	res, err := r.db.ExecContext(ctx, finishRunSQL, o.Outcome, o.FailedStage, o.Error, finished.UTC(), id)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// Get fetches one run. Returns (nil, nil) if not found.
func (r *RunSQLite) Get(ctx context.Context, id string) (*models.PackagingRun, error) {
	row := r.db.QueryRowContext(ctx, selectRunColumns+` WHERE id=?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select run %s: %w", id, err)
	}
	return run, nil
}

// List returns the most recent runs first.
func (r *RunSQLite) List(ctx context.Context, limit int) ([]models.PackagingRun, error) {
	if limit <= 0 {
		limit = defaultRunListLimit
	}
	rows, err := r.db.QueryContext(ctx, selectRunColumns+` ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.PackagingRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.PackagingRun, error) {
	var (
		run               models.PackagingRun
		product, settings string
		finished          sql.NullTime
	)
	if err := row.Scan(
		&run.ID,
		&run.OperatorID,
		&product,
		&settings,
		&run.Outcome,
		&run.FailedStage,
		&run.Error,
		&run.StartedAt,
		&finished,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(product), &run.Product); err != nil {
		return nil, fmt.Errorf("decode product of run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(settings), &run.Settings); err != nil {
		return nil, fmt.Errorf("decode settings of run %s: %w", run.ID, err)
	}
	run.StartedAt = run.StartedAt.UTC()
	if finished.Valid {
		t := finished.Time.UTC()
		run.FinishedAt = &t
	}
	return &run, nil
}
