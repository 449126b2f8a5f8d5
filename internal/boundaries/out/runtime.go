// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (dump tools, restic, webhooks, cron).
package out

import (
	"context"
	"io"
)

// Command describes a subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Env entries (KEY=VALUE) are appended to the inherited process environment.
	Env    []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// RunAs switches the process to another identity when set.
	RunAs *Identity
}

// Identity is a numeric user and group the process runs as.
type Identity struct {
	UID    uint32
	GID    uint32
	Groups []uint32
}

// CommandRunner executes external programs.
// A non-zero exit is returned as an error exposing ExitCode() int.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
	// Start launches a long-running process and returns a function waiting for it to exit.
	Start(ctx context.Context, cmd Command) (wait func() error, err error)
}
