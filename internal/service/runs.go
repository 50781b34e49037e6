package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/repository"
)

const maxRunListLimit = 500

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("packaging run not found")

type RunHistoryService struct {
	runRepo repository.RunRepo
}

func NewRunHistoryService(runRepo repository.RunRepo) *RunHistoryService {
	return &RunHistoryService{runRepo: runRepo}
}

// ListRuns returns the newest runs first. A non-positive limit uses the repository default.
func (s *RunHistoryService) ListRuns(ctx context.Context, limit int) ([]models.PackagingRun, error) {
	if limit > maxRunListLimit {
		limit = maxRunListLimit
	}
	return s.runRepo.List(ctx, limit)
}

func (s *RunHistoryService) GetRun(ctx context.Context, id string) (models.PackagingRun, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.PackagingRun{}, ErrRunNotFound
	}
	run, err := s.runRepo.Get(ctx, id)
	if err != nil {
		return models.PackagingRun{}, fmt.Errorf("load run %s: %w", id, err)
	}
	if run == nil {
		return models.PackagingRun{}, ErrRunNotFound
	}
	return *run, nil
}
