package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/adapters/out/command"
	"github.com/bnema/snapdb/internal/adapters/out/crontab"
	"github.com/bnema/snapdb/internal/adapters/out/dbprobe"
	"github.com/bnema/snapdb/internal/adapters/out/dumper"
	"github.com/bnema/snapdb/internal/adapters/out/execctx"
	"github.com/bnema/snapdb/internal/adapters/out/restic"
	"github.com/bnema/snapdb/internal/adapters/out/telemetry"
	"github.com/bnema/snapdb/internal/adapters/out/webhook"
	"github.com/bnema/snapdb/internal/domain"
	"github.com/bnema/snapdb/internal/usecase/backup"
	"github.com/bnema/snapdb/internal/usecase/schedule"
	"github.com/bnema/snapdb/pkg/version"
)

// Options selects how the kernel loads its configuration.
type Options struct {
	// EnvFile is an optional dotenv file loaded before reading the environment.
	EnvFile string
	// StateDir is set for cron occurrences: the persisted cron env file is loaded from it
	// and logs go to the rotated file inside it.
	StateDir string
}

// Kernel wires the adapters and use cases for one process invocation.
type Kernel struct {
	cfg      domain.RunConfig
	log      zerowrap.Logger
	runner   *command.Runner
	store    *restic.Client
	backup   *backup.Service
	self     string
	cleanups []func()
}

// NewKernel loads configuration, builds the logger and wires every component.
func NewKernel(ctx context.Context, opts Options) (*Kernel, error) {
	if opts.StateDir != "" {
		if err := crontab.NewEnvStore(opts.StateDir).Load(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	}

	_, cfg, err := initConfig(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	var logFile string
	if opts.StateDir != "" {
		cfg.SnapDB.StateDir = opts.StateDir
		logFile = logFilePath(opts.StateDir)
	}

	log, logCleanup, err := initLogger(cfg, logFile)
	if err != nil {
		return nil, err
	}

	k := &Kernel{log: log, self: selfPath()}
	if logCleanup != nil {
		k.cleanups = append(k.cleanups, logCleanup)
	}

	rc, err := cfg.RunConfig()
	if err != nil {
		k.Close()
		return nil, err
	}
	k.cfg = rc

	if err := os.MkdirAll(rc.StateDir, 0o700); err != nil {
		log.Warn().
			Str(zerowrap.FieldLayer, "app").
			Str(zerowrap.FieldPath, rc.StateDir).
			Err(err).
			Msg("state directory unavailable")
	}

	provider, err := telemetry.NewProvider(ctx, cfg.OTel, "snapdb", version.Version())
	if err != nil {
		k.Close()
		return nil, log.WrapErr(err, "failed to initialize telemetry")
	}
	k.cleanups = append(k.cleanups, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Str(zerowrap.FieldLayer, "app").Err(err).Msg("failed to flush metrics")
		}
	})

	metrics, err := telemetry.NewMetrics(provider.MeterProvider())
	if err != nil {
		k.Close()
		return nil, log.WrapErr(err, "failed to create metrics")
	}

	k.runner = command.NewRunner(log)
	k.store = restic.NewClient(k.runner, rc.Repository, rc.StateDir, log)
	k.backup = backup.NewService(
		rc,
		dumper.All(k.runner, rc.Database, log),
		k.store,
		webhook.New(rc.Notify, log),
		backup.WithProbe(dbprobe.New(log)),
		backup.WithRecorder(metrics),
	)

	return k, nil
}

// Close flushes telemetry and closes the log file.
func (k *Kernel) Close() {
	if k == nil {
		return
	}
	for i := len(k.cleanups) - 1; i >= 0; i-- {
		k.cleanups[i]()
	}
	k.cleanups = nil
}

// Config returns the resolved run configuration.
func (k *Kernel) Config() domain.RunConfig { return k.cfg }

// Logger returns the process logger.
func (k *Kernel) Logger() zerowrap.Logger { return k.log }

// Schedule starts the configured scheduling mode.
func (k *Kernel) Schedule(ctx context.Context) (int, error) {
	if err := ValidateEngine(k.cfg); err != nil {
		return 1, err
	}
	ctx = zerowrap.WithCtx(ctx, k.log)

	stateDir := k.cfg.StateDir
	scheduler := schedule.NewScheduler(
		k.cfg.Schedule,
		execctx.NewInProcess(k.backup),
		schedule.CronSupport{
			Installer: crontab.NewInstaller(k.runner, stateDir, k.log),
			Daemon:    crontab.NewDaemon(k.runner, k.log),
			EnvStore:  crontab.NewEnvStore(stateDir),
			Env:       crontab.ProcessEnv(),
			Command:   []string{k.self, "run-cron", "--state-dir", stateDir},
		},
		k.log,
	)
	return scheduler.Start(ctx)
}

// RunOnce performs a single backup in this process.
func (k *Kernel) RunOnce(ctx context.Context) (int, error) {
	if err := ValidateEngine(k.cfg); err != nil {
		return 1, err
	}
	ctx = zerowrap.WithCtx(ctx, k.log)
	return execctx.NewInProcess(k.backup).RunOnce(ctx)
}

// RunCron performs one cron occurrence, dropping privileges when configured.
func (k *Kernel) RunCron(ctx context.Context) (int, error) {
	if err := ValidateEngine(k.cfg); err != nil {
		return 1, err
	}
	ctx = zerowrap.WithCtx(ctx, k.log)

	k.log.Info().
		Str(zerowrap.FieldLayer, "app").
		Str(zerowrap.FieldAction, "run-cron").
		Str("run_as_user", k.cfg.RunAsUser).
		Msg("cron occurrence")

	// The cache lives below the state dir.
	owned := []string{k.cfg.StateDir, k.cfg.WorkDir}
	executor := execctx.Select(k.backup, k.runner, k.cfg.RunAsUser, k.self, os.Geteuid(), owned, k.log)
	return executor.RunOnce(ctx)
}

// Init initializes the repository when it does not exist yet.
func (k *Kernel) Init(ctx context.Context) error {
	return k.backup.Initialize(zerowrap.WithCtx(ctx, k.log))
}

// Forget applies the retention tiers and prunes unreferenced data.
func (k *Kernel) Forget(ctx context.Context) error {
	return k.backup.Forget(zerowrap.WithCtx(ctx, k.log))
}

// Exec runs an arbitrary command with the repository environment and returns its exit code.
func (k *Kernel) Exec(ctx context.Context, name string, args []string) (int, error) {
	if name == "" {
		return 1, errors.New("exec requires a command")
	}
	err := k.store.Passthrough(zerowrap.WithCtx(ctx, k.log), name, args)
	return domain.ExitCodeOf(err), err
}
