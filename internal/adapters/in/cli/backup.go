package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bnema/snapdb/internal/adapters/out/command"
	"github.com/bnema/snapdb/internal/app"
)

func runSchedule(cmd *cobra.Command, factory RuntimeFactory, opts *rootOptions) error {
	return withRuntime(cmd, factory, app.Options{EnvFile: opts.envFile}, func(ctx context.Context, rt Runtime) error {
		return codeResult(rt.Schedule(ctx))
	})
}

// newScheduleCmd creates the schedule command.
func newScheduleCmd(factory RuntimeFactory, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run backups on the configured schedule",
		Long: `Run backups through the OS cron daemon when BACKUP_CRON is set, every
BACKUP_INTERVAL otherwise, or once when neither is set.

In once mode the process exits with the run's exit code. Interval mode keeps
running until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, factory, opts)
		},
	}
}

// newRunCmd creates the run command.
func newRunCmd(factory RuntimeFactory, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a single backup now",
		Long:  `Dump the database, snapshot it, apply retention and exit with the exit code of the first failing step.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, app.Options{EnvFile: opts.envFile}, func(ctx context.Context, rt Runtime) error {
				return codeResult(rt.RunOnce(ctx))
			})
		},
	}
}

// newRunCronCmd creates the entry point invoked by the crontab line.
func newRunCronCmd(factory RuntimeFactory, opts *rootOptions) *cobra.Command {
	var stateDir string

	cmd := &cobra.Command{
		Use:    "run-cron",
		Short:  "Run one cron occurrence",
		Long:   `Load the persisted cron environment, log to the state directory and run one backup, as RUN_AS_USER when started as root.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stateDir == "" {
				stateDir = defaultStateDir()
			}
			runOpts := app.Options{EnvFile: opts.envFile, StateDir: stateDir}
			return withRuntime(cmd, factory, runOpts, func(ctx context.Context, rt Runtime) error {
				return codeResult(rt.RunCron(ctx))
			})
		},
	}

	cmd.Flags().StringVar(&stateDir, "state-dir", "", "State directory holding the cron env file (default $SNAPDB_STATE_DIR or /var/lib/snapdb)")

	return cmd
}

// newForgetCmd creates the forget command.
func newForgetCmd(factory RuntimeFactory, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Apply retention and prune the repository",
		Long:  `Remove snapshots outside the KEEP_DAILY, KEEP_WEEKLY, KEEP_MONTHLY and KEEP_YEARLY tiers and prune unreferenced data.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, app.Options{EnvFile: opts.envFile}, func(ctx context.Context, rt Runtime) error {
				return codeResult(0, rt.Forget(ctx))
			})
		},
	}
}

// newInitCmd creates the init command.
func newInitCmd(factory RuntimeFactory, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the repository if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, app.Options{EnvFile: opts.envFile}, func(ctx context.Context, rt Runtime) error {
				return codeResult(0, rt.Init(ctx))
			})
		},
	}
}

// newExecCmd creates the passthrough command.
func newExecCmd(factory RuntimeFactory, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the repository environment",
		Long: `Run a command with RESTIC_REPOSITORY, the password and the cache directory
exported, for example "snapdb exec -- restic snapshots". The command's exit
code is propagated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return &ExitError{Code: 1, Err: errors.New("exec requires a command")}
			}
			return withRuntime(cmd, factory, app.Options{EnvFile: opts.envFile}, func(ctx context.Context, rt Runtime) error {
				code, err := rt.Exec(ctx, args[0], args[1:])
				if code != 0 && code != command.ExitCodeNotFound {
					// The child already wrote its own diagnostics.
					return &ExitError{Code: code}
				}
				return codeResult(code, err)
			})
		},
	}

	// Flags after the command name belong to the command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
