package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snapdb/internal/adapters/out/command"
	"github.com/bnema/snapdb/internal/adapters/out/webhook"
	"github.com/bnema/snapdb/internal/boundaries/out"
	outmocks "github.com/bnema/snapdb/internal/boundaries/out/mocks"
	"github.com/bnema/snapdb/internal/domain"
)

func testCtx() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func testConfig(t *testing.T, engine domain.Engine) domain.RunConfig {
	t.Helper()
	return domain.RunConfig{
		Database:   domain.DatabaseConfig{Engine: engine, Host: "db", Name: "shop"},
		Repository: domain.RepositoryConfig{Location: "/srv/restic", Password: "pw"},
		Tags:       []string{"nightly"},
		Retention:  domain.RetentionPolicy{Daily: 7, Weekly: 4, Monthly: 12, Yearly: 1},
		WorkDir:    t.TempDir(),
	}
}

// fixedClock returns start on the first call and start+elapsed afterwards.
func fixedClock(start time.Time, elapsed time.Duration) func() time.Time {
	calls := 0
	return func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(elapsed)
	}
}

type harness struct {
	dumper   *outmocks.MockDumper
	store    *outmocks.MockSnapshotStore
	notifier *outmocks.MockNotifier
	svc      *Service
}

func newHarness(t *testing.T, cfg domain.RunConfig, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		dumper:   outmocks.NewMockDumper(t),
		store:    outmocks.NewMockSnapshotStore(t),
		notifier: outmocks.NewMockNotifier(t),
	}
	h.dumper.EXPECT().Engine().Return(cfg.Database.Engine).Maybe()
	h.svc = NewService(cfg, []out.Dumper{h.dumper}, h.store, h.notifier, opts...)
	h.svc.newID = func() string { return "run-1" }
	return h
}

// expectDump makes the dumper write an artifact into the workspace it receives.
func (h *harness) expectDump(t *testing.T, hostHint string) *string {
	t.Helper()
	var seen string
	h.dumper.EXPECT().Dump(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, workspace string) (*domain.DumpResult, error) {
		seen = workspace
		assert.DirExists(t, workspace)
		artifact := filepath.Join(workspace, "dump.sql")
		require.NoError(t, os.WriteFile(artifact, []byte("-- dump"), 0o600))
		return &domain.DumpResult{ArtifactPath: artifact, Workspace: workspace, Engine: h.svc.cfg.Database.Engine, HostHint: hostHint}, nil
	})
	return &seen
}

func TestService_Run_Success(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)
	start := time.Date(2026, 3, 1, 2, 0, 0, 500_000_000, time.UTC)
	h.svc.nowFn = fixedClock(start, 42*time.Second)

	workspace := h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, []string{"nightly", "type=postgres", "host=db:5432"}).
		Return(domain.SnapshotSummary{SnapshotID: "abc123", DataAdded: 512, FilesNew: 3}, nil)
	h.store.EXPECT().Forget(mock.Anything, cfg.Retention, false).Return(nil)

	var sent domain.RunReport
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, r domain.RunReport) error {
		sent = r
		return nil
	})

	report, err := h.svc.Run(testCtx())

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, domain.RunStatusSuccess, report.Status)
	assert.Equal(t, 0, report.ExitCode)
	assert.Equal(t, "abc123", report.Summary.SnapshotID)
	assert.Equal(t, int64(512), report.Summary.DataAdded)
	assert.Equal(t, int64(3), report.Summary.FilesNew)
	assert.Equal(t, int64(0), report.Summary.FilesChanged)
	assert.Equal(t, int64(0), report.Summary.FilesUnmodified)
	assert.Equal(t, time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC), report.StartedAt)
	assert.Equal(t, int64(42), report.DurationSeconds())
	assert.Equal(t, "/srv/restic", report.Repository)
	assert.Equal(t, "db:5432", report.Host)
	assert.Equal(t, *report, sent)

	payload := webhook.NewPayload(sent)
	require.NotNil(t, payload.SnapshotID)
	assert.Equal(t, "abc123", *payload.SnapshotID)
	assert.Equal(t, int64(512), payload.DataAddedBytes)

	assert.NoDirExists(t, *workspace)
}

func TestService_Run_DispatchesEverySynonym(t *testing.T) {
	for _, selector := range []string{"postgres", "postgresql", "pg", "pgsql", "mysql", "mariadb", "mongo", "mongodb", "PostgreSQL"} {
		t.Run(selector, func(t *testing.T) {
			engine, err := domain.ParseEngine(selector)
			require.NoError(t, err)

			cfg := testConfig(t, engine)
			dumpers := make([]out.Dumper, 0, 3)
			var chosen *outmocks.MockDumper
			for _, e := range domain.Engines() {
				d := outmocks.NewMockDumper(t)
				d.EXPECT().Engine().Return(e)
				if e == engine {
					chosen = d
				}
				dumpers = append(dumpers, d)
			}
			chosen.EXPECT().Dump(mock.Anything, filepath.Join(cfg.WorkDir, string(engine))).
				Return(nil, domain.NewStepError(domain.StepDump, 1, domain.ErrDumpFailed))

			notifier := outmocks.NewMockNotifier(t)
			notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)
			svc := NewService(cfg, dumpers, outmocks.NewMockSnapshotStore(t), notifier)

			report, _ := svc.Run(testCtx())
			require.NotNil(t, report)
			assert.Equal(t, engine, report.Engine)
		})
	}
}

func TestService_Run_MissingDumperIsConfigurationError(t *testing.T) {
	cfg := testConfig(t, domain.EngineMongo)
	postgres := outmocks.NewMockDumper(t)
	postgres.EXPECT().Engine().Return(domain.EnginePostgres)

	svc := NewService(cfg, []out.Dumper{postgres}, outmocks.NewMockSnapshotStore(t), outmocks.NewMockNotifier(t))
	report, err := svc.Run(testCtx())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrNoDumper)
	assert.Equal(t, 1, domain.ExitCodeOf(err))
}

func TestService_Run_MissingRepositoryIsConfigurationError(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	cfg.Repository.Password = ""
	h := newHarness(t, cfg)

	report, err := h.svc.Run(testCtx())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)
}

func TestService_Run_DumpFailureSkipsSnapshotAndRetention(t *testing.T) {
	cfg := testConfig(t, domain.EngineMySQL)
	h := newHarness(t, cfg)

	var workspace string
	h.dumper.EXPECT().Dump(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, ws string) (*domain.DumpResult, error) {
		workspace = ws
		require.NoError(t, os.WriteFile(filepath.Join(ws, "partial.sql"), []byte("--"), 0o600))
		return nil, &command.ExitError{Name: "mysqldump", Code: 2}
	})
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDumpFailed)
	require.NotNil(t, report)
	assert.Equal(t, domain.RunStatusFailed, report.Status)
	assert.Equal(t, 2, report.ExitCode)
	assert.Contains(t, report.Message, "2")
	assert.Empty(t, report.Summary.SnapshotID)
	assert.NoDirExists(t, workspace)
	h.store.AssertNotCalled(t, "Snapshot", mock.Anything, mock.Anything, mock.Anything)
	h.store.AssertNotCalled(t, "Forget", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Run_UploadFailure(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)

	workspace := h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.SnapshotSummary{}, domain.NewStepError(domain.StepSnapshot, 3, domain.ErrUploadFailed))
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Equal(t, domain.RunStatusFailed, report.Status)
	assert.Equal(t, 3, report.ExitCode)
	assert.Contains(t, report.Message, "snapshot")
	assert.NoDirExists(t, *workspace)
	h.store.AssertNotCalled(t, "Forget", mock.Anything, mock.Anything, mock.Anything)
	h.store.AssertNotCalled(t, "LatestSnapshotID", mock.Anything)
}

func TestService_Run_RetentionFailureKeepsSnapshot(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	cfg.PruneOnSuccess = true
	h := newHarness(t, cfg)

	h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.SnapshotSummary{SnapshotID: "abc123"}, nil)
	h.store.EXPECT().Forget(mock.Anything, cfg.Retention, true).
		Return(domain.NewStepError(domain.StepRetention, 1, domain.ErrRetentionFailed))
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	assert.ErrorIs(t, err, domain.ErrRetentionFailed)
	assert.Equal(t, domain.RunStatusFailed, report.Status)
	assert.Equal(t, "abc123", report.Summary.SnapshotID)
	assert.Contains(t, report.Message, "retention")
}

func TestService_Run_InitializesOnlyOnce(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)

	h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(false).Once()
	h.store.EXPECT().Initialize(mock.Anything).Return(nil).Once()
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true).Once()
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.SnapshotSummary{SnapshotID: "abc123"}, nil).Times(2)
	h.store.EXPECT().Forget(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil).Times(2)

	for range 2 {
		report, err := h.svc.Run(testCtx())
		require.NoError(t, err)
		assert.True(t, report.Succeeded())
	}
}

func TestService_Run_InitializeFailure(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)

	h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(false)
	h.store.EXPECT().Initialize(mock.Anything).Return(&command.ExitError{Name: "restic", Code: 1})
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Equal(t, domain.RunStatusFailed, report.Status)
}

func TestService_Run_MissingSummaryFallsBackToLatestSnapshot(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)

	h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).Return(domain.SnapshotSummary{}, nil)
	h.store.EXPECT().Forget(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	h.store.EXPECT().LatestSnapshotID(mock.Anything).Return("f00dbabe", nil)
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	require.NoError(t, err)
	assert.Equal(t, "f00dbabe", report.Summary.SnapshotID)
	assert.Equal(t, int64(0), report.Summary.DataAdded)
}

func TestService_Run_LatestSnapshotLookupFailureIsTolerated(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)

	h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).Return(domain.SnapshotSummary{}, nil)
	h.store.EXPECT().Forget(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	h.store.EXPECT().LatestSnapshotID(mock.Anything).Return("", errors.New("repository locked"))
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSuccess, report.Status)
	assert.Nil(t, webhook.NewPayload(*report).SnapshotID)
}

func TestService_Run_NotificationFailureDoesNotChangeOutcome(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	cfg.Notify = domain.NotifyConfig{URL: "http://127.0.0.1:1/hook", Timeout: time.Second}
	dumper := outmocks.NewMockDumper(t)
	dumper.EXPECT().Engine().Return(domain.EnginePostgres)
	dumper.EXPECT().Dump(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, ws string) (*domain.DumpResult, error) {
		return &domain.DumpResult{ArtifactPath: filepath.Join(ws, "dump.sql"), Workspace: ws, Engine: domain.EnginePostgres}, nil
	})
	store := outmocks.NewMockSnapshotStore(t)
	store.EXPECT().IsInitialized(mock.Anything).Return(true)
	store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).Return(domain.SnapshotSummary{SnapshotID: "abc123"}, nil)
	store.EXPECT().Forget(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(cfg, []out.Dumper{dumper}, store, webhook.New(cfg.Notify, zerowrap.Default()))
	report, err := svc.Run(testCtx())

	require.NoError(t, err)
	assert.Equal(t, 0, report.ExitCode)
	assert.True(t, report.Succeeded())
}

func TestService_Run_WaitsForDatabase(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	cfg.Database.WaitTimeout = time.Second
	probe := outmocks.NewMockDatabaseProbe(t)
	probe.EXPECT().Ping(mock.Anything, cfg.Database).Return(errors.New("connection refused"))
	h := newHarness(t, cfg, WithProbe(probe))
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, err := h.svc.Run(testCtx())

	assert.ErrorIs(t, err, domain.ErrDumpFailed)
	assert.Equal(t, 1, report.ExitCode)
	h.dumper.AssertNotCalled(t, "Dump", mock.Anything, mock.Anything)
}

func TestService_Run_RecordsMetrics(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	recorder := outmocks.NewMockRunRecorder(t)
	h := newHarness(t, cfg, WithRecorder(recorder))

	h.expectDump(t, "db:5432")
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	h.store.EXPECT().Snapshot(mock.Anything, mock.Anything, mock.Anything).Return(domain.SnapshotSummary{SnapshotID: "abc123"}, nil)
	h.store.EXPECT().Forget(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	recorder.EXPECT().RecordRun(mock.Anything, mock.MatchedBy(func(r domain.RunReport) bool {
		return r.Succeeded() && r.RunID == "run-1"
	})).Return()
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	_, err := h.svc.Run(testCtx())
	require.NoError(t, err)
}

func TestService_Run_RemovesStaleWorkspace(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)

	stale := filepath.Join(cfg.WorkDir, "postgres", "leftover.sql")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o700))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	h.dumper.EXPECT().Dump(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, ws string) (*domain.DumpResult, error) {
		assert.NoFileExists(t, stale)
		return nil, domain.NewStepError(domain.StepDump, 1, domain.ErrDumpFailed)
	})
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	_, err := h.svc.Run(testCtx())
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(cfg.WorkDir, "postgres"))
}

func TestService_Run_NegativeDurationIsClamped(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)
	h.svc.nowFn = fixedClock(time.Date(2026, 3, 1, 2, 0, 10, 0, time.UTC), -5*time.Second)

	h.dumper.EXPECT().Dump(mock.Anything, mock.Anything).Return(nil, domain.NewStepError(domain.StepDump, 1, domain.ErrDumpFailed))
	h.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(nil)

	report, _ := h.svc.Run(testCtx())
	assert.Equal(t, int64(0), report.DurationSeconds())
}

func TestService_Initialize(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)

	h := newHarness(t, cfg)
	h.store.EXPECT().IsInitialized(mock.Anything).Return(true)
	require.NoError(t, h.svc.Initialize(testCtx()))

	h = newHarness(t, cfg)
	h.store.EXPECT().IsInitialized(mock.Anything).Return(false)
	h.store.EXPECT().Initialize(mock.Anything).Return(nil)
	require.NoError(t, h.svc.Initialize(testCtx()))

	cfg.Repository.Location = ""
	h = newHarness(t, cfg)
	assert.ErrorIs(t, h.svc.Initialize(testCtx()), domain.ErrRepositoryRequired)
}

func TestService_Forget_AlwaysPrunes(t *testing.T) {
	cfg := testConfig(t, domain.EnginePostgres)
	h := newHarness(t, cfg)
	h.store.EXPECT().Forget(mock.Anything, cfg.Retention, true).Return(nil)

	require.NoError(t, h.svc.Forget(testCtx()))
}
