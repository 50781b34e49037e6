package service

import (
	"context"

	"vacuum_packaging/internal/logger"
	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Packaging validates configurations and starts packaging runs.
type Packaging interface {
	Validate(p models.Product, s models.PackagingSettings) ValidationReport
	Recommend(m models.PackagingMaterial) (Recommendation, error)
	Start(ctx context.Context, operatorID int, p models.Product, s models.PackagingSettings) (models.PackagingRun, error)
	Drain(ctx context.Context) error
}

// Monitoring exposes the machine state (state, run, stage, last outcome).
type Monitoring interface {
	GetState(ctx context.Context) (models.MachineState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PackagingEvent, error)
}

// RunHistory exposes finished and in-flight run records.
type RunHistory interface {
	ListRuns(ctx context.Context, limit int) ([]models.PackagingRun, error)
	GetRun(ctx context.Context, id string) (models.PackagingRun, error)
}

// Stream delivers live controller events.
type Stream interface {
	Subscribe() (<-chan models.PackagingEvent, func())
}

type Service struct {
	Packaging
	Monitoring
	EventLog
	RunHistory
	Stream
	Authorization
}

// NewService wires the repository layer and the controller into concrete services.
// The controller is expected to have the Recorder and feed registered as observers.
func NewService(repos *repository.Repository, ctl *packaging.Controller, feed *Feed, auth AuthConfig, log *logger.Logger) *Service {
	return &Service{
		Stream:        feed,
		Packaging:     NewPackagingService(ctl, repos.RunRepo, log),
		Monitoring:    NewMonitoringService(repos.StateRepo, ctl),
		EventLog:      NewEventLogService(repos.EventRepo),
		RunHistory:    NewRunHistoryService(repos.RunRepo),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
