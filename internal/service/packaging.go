package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"vacuum_packaging/internal/logger"
	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
	"vacuum_packaging/internal/repository"
)

// finishTimeout bounds the write of a run's outcome after execution.
const finishTimeout = 5 * time.Second

// PackagingService starts runs on the controller and executes them in the
// background. Start returns as soon as the run is accepted and recorded.
type PackagingService struct {
	ctl     *packaging.Controller
	runRepo repository.RunRepo
	log     *logger.Logger
	now     func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewPackagingService(ctl *packaging.Controller, runRepo repository.RunRepo, log *logger.Logger) *PackagingService {
	ctx, cancel := context.WithCancel(context.Background())
	return &PackagingService{
		ctl:     ctl,
		runRepo: runRepo,
		log:     log.Component("packaging"),
		now:     time.Now,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Validate runs the safety rules without touching the machine.
func (s *PackagingService) Validate(p models.Product, st models.PackagingSettings) ValidationReport {
	err := packaging.Check(p, st)
	if err == nil {
		return ValidationReport{Valid: true}
	}
	report := ValidationReport{}
	for _, v := range packaging.Violations(err) {
		report.Violations = append(report.Violations, v.Error())
	}
	return report
}

// Recommend returns the sealing time suggested for the material's thickness.
func (s *PackagingService) Recommend(m models.PackagingMaterial) (Recommendation, error) {
	thickness, ok := m.ThicknessMM()
	if !ok {
		return Recommendation{}, fmt.Errorf("%w: %q", packaging.ErrUnknownMaterial, m)
	}
	return Recommendation{
		Material:      m,
		ThicknessMM:   thickness,
		SealingTimeMS: s.ctl.RecommendedSealingTime(m).Milliseconds(),
	}, nil
}

// Start validates and claims the machine, records the run and executes it
// in the background. Errors match packaging.ErrConfigurationRejected or
// packaging.ErrMachineBusy when the request is refused.
func (s *PackagingService) Start(ctx context.Context, operatorID int, p models.Product, st models.PackagingSettings) (models.PackagingRun, error) {
	if err := s.baseCtx.Err(); err != nil {
		return models.PackagingRun{}, ErrShuttingDown
	}
	run, err := s.ctl.Prepare(p, st)
	if err != nil {
		return models.PackagingRun{}, err
	}

	rec := models.PackagingRun{
		ID:         run.ID,
		OperatorID: operatorID,
		Product:    p,
		Settings:   st,
		StartedAt:  s.now().UTC(),
	}
	if err := s.runRepo.Create(ctx, rec); err != nil {
		run.Abandon()
		return models.PackagingRun{}, fmt.Errorf("record run %s: %w", run.ID, err)
	}

	s.wg.Add(1)
	go s.execute(run)

	if s.log != nil {
		s.log.Infow("run_accepted", "run_id", run.ID, "operator_id", operatorID, "product", p.Name, "stages", run.Stages())
	}
	return rec, nil
}

func (s *PackagingService) execute(run *packaging.Run) {
	defer s.wg.Done()

	res := run.Execute(s.baseCtx)

	outcome := repository.RunOutcome{
		Outcome:     string(res.Outcome),
		FailedStage: string(res.FailedStage),
		FinishedAt:  res.FinishedAt,
	}
	if res.Cause != nil {
		outcome.Error = res.Cause.Error()
	}

	// The run context may already be canceled on shutdown; the outcome is still written.
	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()
	if err := s.runRepo.Finish(ctx, run.ID, outcome); err != nil && s.log != nil {
		s.log.Errorw("run_finish_record_failed", "run_id", run.ID, "err", err)
	}

	if s.log == nil {
		return
	}
	if res.Succeeded() {
		s.log.Infow("run_finished", "run_id", run.ID, "outcome", res.Outcome, "elapsed", res.FinishedAt.Sub(res.StartedAt))
		return
	}
	s.log.Warnw("run_finished", "run_id", run.ID, "outcome", res.Outcome, "failed_stage", res.FailedStage, "err", res.Cause)
}

// Drain stops accepting runs, cancels the one in flight and waits for it
// to be recorded or for ctx to expire.
func (s *PackagingService) Drain(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ErrShuttingDown is returned by Start once Drain has been called.
var ErrShuttingDown = errors.New("packaging service is shutting down")
