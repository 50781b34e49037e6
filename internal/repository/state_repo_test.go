package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

var stateColumns = []string{"id", "state", "run_id", "stage", "last_outcome", "last_error", "running", "updated_at"}

func newStateRepo(t *testing.T) (*repository.StateSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewStateSQLite(db), mock
}

func TestStateSQLite_Save_SetsUTCWhenTimeZero(t *testing.T) {
	repo, mock := newStateRepo(t)

	state := models.MachineState{
		State:        models.MachineRunning,
		RunID:        "run-1",
		CurrentStage: "EVACUATE",
		IsRunning:    true,
		// UpdatedAt is zero
	}

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO machine_state")).
		WithArgs(1, models.MachineRunning, "run-1", "EVACUATE", "", "", true, isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_PreservesGivenTimeButConvertsToUTC(t *testing.T) {
	repo, mock := newStateRepo(t)

	original := time.Date(2023, 10, 5, 12, 34, 56, 0, time.FixedZone("JST", 9*3600))
	expectedUTC := original.UTC()

	state := models.MachineState{
		State:       models.MachineIdle,
		RunID:       "run-2",
		LastOutcome: "STAGE_FAILURE",
		LastError:   "vacuum pump tripped",
		UpdatedAt:   original,
	}

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(expectedUTC) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO machine_state")).
		WithArgs(1, models.MachineIdle, "run-2", "", "STAGE_FAILURE", "vacuum pump tripped", false, isExactUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ExecErrorIsPropagated(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO machine_state")).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(context.Background(), models.MachineState{State: models.MachineIdle}); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestStateSQLite_Load_NoRowsReturnsZeroValueAndNilError(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, state, run_id, stage, last_outcome, last_error, running, updated_at")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got != (models.MachineState{}) {
		t.Fatalf("Load() expected zero state, got: %+v", got)
	}
}

func TestStateSQLite_Load_HappyPathNormalizesUTC(t *testing.T) {
	repo, mock := newStateRepo(t)

	local := time.Date(2024, 2, 3, 4, 5, 6, 0, time.FixedZone("CET", 3600))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, state, run_id, stage, last_outcome, last_error, running, updated_at")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(stateColumns).
			AddRow(1, models.MachineRunning, "run-9", "SEAL", "", "", true, local))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.ID != 1 || got.State != models.MachineRunning || got.RunID != "run-9" || got.CurrentStage != "SEAL" || !got.IsRunning {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.UpdatedAt.Location() != time.UTC || !got.UpdatedAt.Equal(local) {
		t.Fatalf("UpdatedAt not normalized: %v", got.UpdatedAt)
	}
}

func TestStateSQLite_Load_QueryErrorIsPropagated(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, state")).
		WithArgs(1).
		WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}
