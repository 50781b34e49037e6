package repository

import (
	"context"
	"database/sql"
	"time"

	"vacuum_packaging/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

type StateRepo interface {
	Save(ctx context.Context, s models.MachineState) error
	Load(ctx context.Context) (models.MachineState, error)
}

// EventQuery filters the event log. Zero values mean "no filter".
type EventQuery struct {
	From  time.Time
	To    time.Time
	Type  string
	RunID string
}

type EventRepo interface {
	Append(ctx context.Context, e models.PackagingEvent) error
	List(ctx context.Context, q EventQuery) ([]models.PackagingEvent, error)
}

// RunOutcome is what RunRepo.Finish records for a run.
type RunOutcome struct {
	Outcome     string
	FailedStage string
	Error       string
	FinishedAt  time.Time
}

type RunRepo interface {
	Create(ctx context.Context, r models.PackagingRun) error
	Finish(ctx context.Context, id string, o RunOutcome) error
	Get(ctx context.Context, id string) (*models.PackagingRun, error)
	List(ctx context.Context, limit int) ([]models.PackagingRun, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	RunRepo   RunRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		RunRepo:   NewRunSQLite(db),
		Auth:      NewOperatorRepository(db),
	}
}
