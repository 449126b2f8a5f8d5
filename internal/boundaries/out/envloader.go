package out

import (
	"context"

	"github.com/bnema/snapdb/internal/domain"
)

// CronInstaller registers the single schedule entry that re-invokes the process.
type CronInstaller interface {
	Install(ctx context.Context, schedule domain.Schedule, command []string) error
}

// CronDaemon runs the OS cron daemon and blocks until it exits.
type CronDaemon interface {
	Run(ctx context.Context) error
}

// EnvStore persists the process environment for later cron occurrences.
type EnvStore interface {
	Save(env map[string]string) error
	Load() error
}

// Executor runs one backup in a given execution context and returns its exit code.
type Executor interface {
	RunOnce(ctx context.Context) (int, error)
}
