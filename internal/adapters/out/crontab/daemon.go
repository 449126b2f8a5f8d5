package crontab

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
)

// Daemon runs the cron daemon in the foreground as a child process.
type Daemon struct {
	runner out.CommandRunner
	name   string
	args   []string
	log    zerowrap.Logger
}

// DaemonOption configures the Daemon.
type DaemonOption func(*Daemon)

// WithCommand overrides the daemon invocation. The default is busybox `crond -f`.
func WithCommand(name string, args ...string) DaemonOption {
	return func(d *Daemon) {
		d.name = name
		d.args = args
	}
}

// NewDaemon creates a cron daemon supervisor.
func NewDaemon(runner out.CommandRunner, log zerowrap.Logger, opts ...DaemonOption) *Daemon {
	d := &Daemon{
		runner: runner,
		name:   "crond",
		args:   []string{"-f"},
		log:    log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run starts the daemon and blocks until it exits. Any exit not caused by ctx is an error.
func (d *Daemon) Run(ctx context.Context) error {
	wait, err := d.runner.Start(ctx, out.Command{
		Name:   d.name,
		Args:   d.args,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("start cron daemon: %w", err)
	}

	d.log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "crontab").
		Str("command", d.name).
		Msg("cron daemon started")

	err = wait()
	if ctx.Err() != nil {
		return nil
	}
	if err == nil {
		err = errors.New("exited without error")
	}
	return fmt.Errorf("cron daemon stopped: %w", err)
}
