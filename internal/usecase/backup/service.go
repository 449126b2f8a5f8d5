// Package backup implements the run orchestrator: dump, snapshot, retention and report.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
	"github.com/bnema/snapdb/pkg/bytesize"
)

// Service orchestrates backup runs.
type Service struct {
	cfg      domain.RunConfig
	dumpers  map[domain.Engine]out.Dumper
	store    out.SnapshotStore
	notifier out.Notifier
	probe    out.DatabaseProbe
	recorder out.RunRecorder
	nowFn    func() time.Time
	newID    func() string
}

// Option configures optional collaborators of the Service.
type Option func(*Service)

// WithProbe waits for the database before dumping when a wait timeout is configured.
func WithProbe(probe out.DatabaseProbe) Option {
	return func(s *Service) {
		s.probe = probe
	}
}

// WithRecorder records every report as metrics.
func WithRecorder(recorder out.RunRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// NewService creates a backup service.
func NewService(
	cfg domain.RunConfig,
	dumpers []out.Dumper,
	store out.SnapshotStore,
	notifier out.Notifier,
	opts ...Option,
) *Service {
	byEngine := make(map[domain.Engine]out.Dumper, len(dumpers))
	for _, d := range dumpers {
		byEngine[d.Engine()] = d
	}

	s := &Service{
		cfg:      cfg,
		dumpers:  byEngine,
		store:    store,
		notifier: notifier,
		nowFn:    time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one backup. The report is nil only when the run could not start
// because of a configuration error. For failed runs both the report and the
// first step error are returned.
func (s *Service) Run(ctx context.Context) (*domain.RunReport, error) {
	engine := s.cfg.Database.Engine
	run := &runState{id: s.newID(), phase: domain.PhaseIdle, startedAt: s.now()}

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Run",
		"run_id":              run.id,
		"engine":              string(engine),
	})
	log := zerowrap.FromCtx(ctx)

	run.enter(ctx, domain.PhaseDispatch)
	dumper, ok := s.dumpers[engine]
	if !ok {
		return nil, log.WrapErr(fmt.Errorf("%w: %w %q", domain.ErrConfiguration, domain.ErrNoDumper, engine), "dispatch failed")
	}
	if err := s.cfg.ValidateRepository(); err != nil {
		return nil, log.WrapErr(fmt.Errorf("%w: %w", domain.ErrConfiguration, err), "dispatch failed")
	}

	run.host = domain.HostHint(s.cfg.Database)
	run.tags = s.tags(run.host)
	err := s.execute(ctx, run, dumper)

	run.enter(ctx, domain.PhaseReporting)
	report := s.buildReport(ctx, run, err)

	if s.recorder != nil {
		s.recorder.RecordRun(ctx, report)
	}
	if err := s.notifier.Send(ctx, report); err != nil {
		log.Warn().Err(err).Msg("run report notification failed")
	}

	if report.Succeeded() {
		log.Info().
			Str("snapshot_id", report.Summary.SnapshotID).
			Int64("data_added", report.Summary.DataAdded).
			Str("data_added_human", bytesize.Format(report.Summary.DataAdded)).
			Int64("duration_s", report.DurationSeconds()).
			Msg("backup run succeeded")
	} else {
		log.Error().Err(err).Int("exit_code", report.ExitCode).Msg("backup run failed")
	}
	run.enter(ctx, domain.PhaseIdle)

	return &report, err
}

// execute runs dump, upload and retention. The workspace is removed before it returns.
func (s *Service) execute(ctx context.Context, run *runState, dumper out.Dumper) error {
	log := zerowrap.FromCtx(ctx)

	run.enter(ctx, domain.PhaseDumping)
	workspace, err := s.prepareWorkspace(dumper.Engine())
	if err != nil {
		return run.fail(ctx, domain.NewStepError(domain.StepDump, 1, fmt.Errorf("%w: %w", domain.ErrDumpFailed, err)))
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			log.Warn().Err(err).Str(zerowrap.FieldPath, workspace).Msg("failed to remove workspace")
		}
	}()

	if s.probe != nil && s.cfg.Database.WaitTimeout > 0 {
		if err := s.probe.Ping(ctx, s.cfg.Database); err != nil {
			return run.fail(ctx, domain.NewStepError(domain.StepDump, 1, fmt.Errorf("%w: %w", domain.ErrDumpFailed, err)))
		}
	}

	result, err := dumper.Dump(ctx, workspace)
	if err != nil {
		return run.fail(ctx, asStepError(domain.StepDump, domain.ErrDumpFailed, err))
	}
	if result.HostHint != "" {
		run.host = result.HostHint
		run.tags = s.tags(run.host)
	}

	run.enter(ctx, domain.PhaseUploading)
	if !s.store.IsInitialized(ctx) {
		log.Info().Msg("repository not initialized, initializing")
		if err := s.store.Initialize(ctx); err != nil {
			return run.fail(ctx, asStepError(domain.StepSnapshot, domain.ErrUploadFailed, err))
		}
	}
	summary, err := s.store.Snapshot(ctx, result.ArtifactPath, run.tags)
	if err != nil {
		return run.fail(ctx, asStepError(domain.StepSnapshot, domain.ErrUploadFailed, err))
	}
	run.summary = summary
	run.snapshotDone = true

	run.enter(ctx, domain.PhaseRetaining)
	if err := s.store.Forget(ctx, s.cfg.Retention, s.cfg.PruneOnSuccess); err != nil {
		return run.fail(ctx, asStepError(domain.StepRetention, domain.ErrRetentionFailed, err))
	}
	return nil
}

func (s *Service) prepareWorkspace(engine domain.Engine) (string, error) {
	workspace := filepath.Join(s.cfg.WorkDir, string(engine))
	if err := os.RemoveAll(workspace); err != nil {
		return "", fmt.Errorf("remove stale workspace: %w", err)
	}
	if err := os.MkdirAll(workspace, 0o700); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	return workspace, nil
}

func (s *Service) buildReport(ctx context.Context, run *runState, err error) domain.RunReport {
	report := domain.RunReport{
		RunID:      run.id,
		StartedAt:  run.startedAt,
		Repository: s.cfg.Repository.Location,
		Engine:     s.cfg.Database.Engine,
		Host:       run.host,
		Tags:       run.tags,
		Summary:    run.summary,
	}

	if run.snapshotDone && report.Summary.SnapshotID == "" {
		id, lookupErr := s.store.LatestSnapshotID(ctx)
		if lookupErr != nil {
			log := zerowrap.FromCtx(ctx)
			log.Warn().Err(lookupErr).Msg("latest snapshot lookup failed")
		}
		report.Summary.SnapshotID = id
	}

	if err != nil {
		report.Status = domain.RunStatusFailed
		report.ExitCode = domain.ExitCodeOf(err)
		report.Message = failureMessage(err, report.ExitCode)
	} else {
		report.Status = domain.RunStatusSuccess
		report.Message = "backup completed successfully"
	}

	report.FinishedAt = s.now()
	if report.FinishedAt.Before(report.StartedAt) {
		report.FinishedAt = report.StartedAt
	}
	return report
}

// tags returns the configured tags plus the derived engine and host tags.
func (s *Service) tags(host string) []string {
	tags := make([]string, 0, len(s.cfg.Tags)+2)
	tags = append(tags, s.cfg.Tags...)
	return append(tags,
		"type="+string(s.cfg.Database.Engine),
		"host="+domain.SanitizeTag(host),
	)
}

func (s *Service) now() time.Time {
	return s.nowFn().UTC().Truncate(time.Second)
}

// Initialize creates the repository unless it already exists.
func (s *Service) Initialize(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Initialize",
	})
	log := zerowrap.FromCtx(ctx)

	if err := s.cfg.ValidateRepository(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	if s.store.IsInitialized(ctx) {
		log.Info().Msg("repository already initialized")
		return nil
	}
	if err := s.store.Initialize(ctx); err != nil {
		return log.WrapErr(err, "failed to initialize repository")
	}
	log.Info().Msg("repository initialized")
	return nil
}

// Forget applies the retention policy and always prunes.
func (s *Service) Forget(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Forget",
	})
	log := zerowrap.FromCtx(ctx)

	if err := s.cfg.ValidateRepository(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	if err := s.store.Forget(ctx, s.cfg.Retention, true); err != nil {
		return log.WrapErr(err, "failed to apply retention")
	}
	log.Info().
		Int("keep_daily", s.cfg.Retention.Daily).
		Int("keep_weekly", s.cfg.Retention.Weekly).
		Int("keep_monthly", s.cfg.Retention.Monthly).
		Int("keep_yearly", s.cfg.Retention.Yearly).
		Msg("retention applied")
	return nil
}

// asStepError makes sure err carries its step and failure kind.
func asStepError(step domain.Step, kind error, err error) error {
	var stepErr *domain.StepError
	if errors.As(err, &stepErr) {
		return err
	}
	if !errors.Is(err, kind) {
		err = fmt.Errorf("%w: %w", kind, err)
	}
	return domain.NewStepError(step, domain.ExitCodeOf(err), err)
}

func failureMessage(err error, code int) string {
	var stepErr *domain.StepError
	if errors.As(err, &stepErr) {
		return fmt.Sprintf("%s step failed with exit code %d", stepErr.Step, code)
	}
	return fmt.Sprintf("backup failed with exit code %d", code)
}
