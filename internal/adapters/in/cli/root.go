// Package cli implements the CLI adapter for snapdb.
// This package provides Cobra commands that delegate to the app layer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/snapdb/internal/app"
	"github.com/bnema/snapdb/internal/domain"
	"github.com/bnema/snapdb/pkg/version"
)

// Runtime is the set of operations the commands delegate to.
type Runtime interface {
	Schedule(ctx context.Context) (int, error)
	RunOnce(ctx context.Context) (int, error)
	RunCron(ctx context.Context) (int, error)
	Init(ctx context.Context) error
	Forget(ctx context.Context) error
	Exec(ctx context.Context, name string, args []string) (int, error)
	Close()
}

// RuntimeFactory builds a Runtime for one invocation.
type RuntimeFactory func(ctx context.Context, opts app.Options) (Runtime, error)

// DefaultFactory wires the real application kernel.
func DefaultFactory(ctx context.Context, opts app.Options) (Runtime, error) {
	k, err := app.NewKernel(ctx, opts)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// ExitError carries a process exit code. Err is nil when the failure was already logged.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code to terminate with.
func (e *ExitError) ExitCode() int { return e.Code }

type rootOptions struct {
	envFile string
}

// NewRootCmd creates the root command. Running it without a subcommand starts the scheduler.
func NewRootCmd(factory RuntimeFactory) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "snapdb",
		Short: "snapdb - periodic database backups into a restic repository",
		Long: `snapdb dumps a PostgreSQL, MySQL/MariaDB or MongoDB database, stores the
dump as a deduplicated restic snapshot, applies retention and reports every
run to an optional webhook.

Without a subcommand it schedules runs according to BACKUP_CRON or
BACKUP_INTERVAL, or runs once when neither is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, factory, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from a dotenv file")

	rootCmd.AddCommand(newScheduleCmd(factory, opts))
	rootCmd.AddCommand(newRunCmd(factory, opts))
	rootCmd.AddCommand(newRunCronCmd(factory, opts))
	rootCmd.AddCommand(newForgetCmd(factory, opts))
	rootCmd.AddCommand(newInitCmd(factory, opts))
	rootCmd.AddCommand(newExecCmd(factory, opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command tree with args and returns the process exit code.
// SIGINT and SIGTERM cancel the context passed to the commands.
func Execute(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(DefaultFactory)
	rootCmd.SetArgs(args)
	rootCmd.SetErr(stderr)
	return exitCode(rootCmd.ExecuteContext(ctx), stderr)
}

// exitCode prints err unless it was already reported and maps it to an exit code.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", exitErr.Err)
		}
		return exitErr.Code
	}
	_, _ = fmt.Fprintln(stderr, "Error:", err)
	return domain.ExitCodeOf(err)
}

// withRuntime builds a Runtime, runs fn and closes it.
func withRuntime(cmd *cobra.Command, factory RuntimeFactory, opts app.Options, fn func(context.Context, Runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := factory(ctx, opts)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	defer rt.Close()
	return fn(ctx, rt)
}

// codeResult converts an operation result into a command error.
func codeResult(code int, err error) error {
	if err == nil && code == 0 {
		return nil
	}
	if code == 0 {
		code = domain.ExitCodeOf(err)
	}
	return &ExitError{Code: code, Err: err}
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("snapdb %s\n", version.Version())
			cmd.Printf("Commit: %s\n", version.Commit())
			cmd.Printf("Build Date: %s\n", version.BuildDate())
		},
	}
}

// defaultStateDir resolves the state directory for cron occurrences started without a flag.
func defaultStateDir() string {
	if dir := os.Getenv("SNAPDB_STATE_DIR"); dir != "" {
		return dir
	}
	return app.DefaultStateDir
}
