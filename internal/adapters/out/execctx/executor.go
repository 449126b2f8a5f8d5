// Package execctx runs a single backup either in-process or as an unprivileged child process.
package execctx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/adapters/out/command"
	"github.com/bnema/snapdb/internal/boundaries/in"
	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

// InProcess runs the backup service in the current process.
type InProcess struct {
	svc in.BackupService
}

// NewInProcess creates an in-process executor.
func NewInProcess(svc in.BackupService) *InProcess {
	return &InProcess{svc: svc}
}

// RunOnce runs one backup and returns its exit code. Errors are returned only when no
// report could be produced.
func (e *InProcess) RunOnce(ctx context.Context) (int, error) {
	report, err := e.svc.Run(ctx)
	if report == nil {
		if err == nil {
			err = errors.New("backup produced no report")
		}
		return domain.ExitCodeOf(err), err
	}
	return report.ExitCode, nil
}

// UserLookup resolves a user name or numeric id.
type UserLookup func(name string) (*user.User, error)

// ChownFunc changes the owner of a single path.
type ChownFunc func(path string, uid, gid int) error

// AsUser re-executes `<self> run` under another account.
type AsUser struct {
	runner   out.CommandRunner
	username string
	self     string
	lookup   UserLookup
	chown    ChownFunc
	dirs     []string
	log      zerowrap.Logger
}

// Option configures AsUser.
type Option func(*AsUser)

// WithUserLookup replaces the os/user lookup.
func WithUserLookup(fn UserLookup) Option {
	return func(e *AsUser) {
		e.lookup = fn
	}
}

// WithOwnedDirs hands dirs, and everything below them, to the target user before the
// child starts. Missing directories are created.
func WithOwnedDirs(dirs ...string) Option {
	return func(e *AsUser) {
		e.dirs = append(e.dirs, dirs...)
	}
}

// WithChown replaces os.Lchown.
func WithChown(fn ChownFunc) Option {
	return func(e *AsUser) {
		e.chown = fn
	}
}

// NewAsUser creates a privilege-dropping executor. self is the snapdb executable.
func NewAsUser(runner out.CommandRunner, username, self string, log zerowrap.Logger, opts ...Option) *AsUser {
	e := &AsUser{
		runner:   runner,
		username: username,
		self:     self,
		lookup:   lookupUser,
		chown:    os.Lchown,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunOnce runs the child and returns its exit code.
func (e *AsUser) RunOnce(ctx context.Context) (int, error) {
	identity, home, err := e.resolve()
	if err != nil {
		return 1, err
	}
	if err := e.handOver(identity); err != nil {
		return 1, err
	}

	e.log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "execctx").
		Str("user", e.username).
		Uint32("uid", identity.UID).
		Msg("running backup as unprivileged user")

	err = e.runner.Run(ctx, out.Command{
		Name:   e.self,
		Args:   []string{"run"},
		Env:    []string{"HOME=" + home, "USER=" + e.username},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		RunAs:  identity,
	})
	if err == nil {
		return 0, nil
	}

	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) && exitErr.ExitCode() != command.ExitCodeNotFound {
		// the child reported its own failure
		return exitErr.ExitCode(), nil
	}
	return domain.ExitCodeOf(err), fmt.Errorf("run as %s: %w", e.username, err)
}

// handOver gives the child ownership of its state, cache and work directories.
func (e *AsUser) handOver(identity *out.Identity) error {
	uid, gid := int(identity.UID), int(identity.GID)
	for _, dir := range e.dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("prepare %s for %s: %w", dir, e.username, err)
		}
		err := filepath.WalkDir(dir, func(path string, _ fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			return e.chown(path, uid, gid)
		})
		if err != nil {
			return fmt.Errorf("hand %s over to %s: %w", dir, e.username, err)
		}
		e.log.Debug().
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "execctx").
			Str(zerowrap.FieldPath, dir).
			Int("uid", uid).
			Msg("directory handed over")
	}
	return nil
}

func (e *AsUser) resolve() (*out.Identity, string, error) {
	u, err := e.lookup(e.username)
	if err != nil {
		return nil, "", fmt.Errorf("%w: RUN_AS_USER %q: %w", domain.ErrConfiguration, e.username, err)
	}
	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid uid %q: %w", domain.ErrConfiguration, u.Uid, err)
	}
	gid, err := strconv.ParseUint(u.Gid, 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid gid %q: %w", domain.ErrConfiguration, u.Gid, err)
	}
	return &out.Identity{UID: uint32(uid), GID: uint32(gid)}, u.HomeDir, nil
}

func lookupUser(name string) (*user.User, error) {
	if _, err := strconv.Atoi(name); err == nil {
		return user.LookupId(name)
	}
	return user.Lookup(name)
}

// Select returns the executor for a cron occurrence: AsUser when running as root with
// a target user configured, InProcess otherwise. dirs are handed to the target user.
func Select(svc in.BackupService, runner out.CommandRunner, runAsUser, self string, euid int, dirs []string, log zerowrap.Logger) out.Executor {
	if euid == 0 && runAsUser != "" && runAsUser != "root" {
		return NewAsUser(runner, runAsUser, self, log, WithOwnedDirs(dirs...))
	}
	return NewInProcess(svc)
}
