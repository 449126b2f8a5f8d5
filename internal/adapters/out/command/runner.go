// Package command runs external programs for the dump, snapshot and cron adapters.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
)

// ExitCodeNotFound is reported when the executable cannot be located.
const ExitCodeNotFound = 127

// ExitError is returned when a command could not run or exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Runner executes commands with os/exec.
type Runner struct {
	log zerowrap.Logger
}

// NewRunner creates a command runner.
func NewRunner(log zerowrap.Logger) *Runner {
	return &Runner{log: log}
}

// Run executes cmd and waits for it to finish.
func (r *Runner) Run(ctx context.Context, cmd out.Command) error {
	c, stderr := r.build(ctx, cmd)

	r.log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "command").
		Str("command", cmd.Name).
		Strs("args", redactArgs(cmd.Args)).
		Msg("running command")

	return wrapErr(cmd.Name, c.Run(), stderr)
}

// Start launches cmd without waiting for it.
func (r *Runner) Start(ctx context.Context, cmd out.Command) (func() error, error) {
	c, stderr := r.build(ctx, cmd)

	r.log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "command").
		Str("command", cmd.Name).
		Strs("args", redactArgs(cmd.Args)).
		Msg("starting command")

	if err := c.Start(); err != nil {
		return nil, wrapErr(cmd.Name, err, stderr)
	}
	return func() error {
		return wrapErr(cmd.Name, c.Wait(), stderr)
	}, nil
}

func (r *Runner) build(ctx context.Context, cmd out.Command) (*exec.Cmd, *tailBuffer) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Env = append(os.Environ(), cmd.Env...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	if cmd.RunAs != nil {
		c.SysProcAttr = &syscall.SysProcAttr{Credential: &syscall.Credential{
			Uid:    cmd.RunAs.UID,
			Gid:    cmd.RunAs.GID,
			Groups: cmd.RunAs.Groups,
		}}
	}

	// stderr is kept for error messages and still forwarded when a writer is set.
	stderr := &tailBuffer{limit: 4096}
	if cmd.Stderr != nil {
		c.Stderr = io.MultiWriter(cmd.Stderr, stderr)
	} else {
		c.Stderr = stderr
	}
	return c, stderr
}

func wrapErr(name string, err error, stderr *tailBuffer) error {
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(stderr.String())

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 1 {
			code = 1
		}
		return &ExitError{Name: name, Code: code, Stderr: msg, Err: err}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return &ExitError{Name: name, Code: ExitCodeNotFound, Err: err}
	}
	return &ExitError{Name: name, Code: 1, Stderr: msg, Err: err}
}
