// Package restic implements the snapshot store on top of the restic CLI.
package restic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bnema/zerowrap"
	"github.com/goccy/go-json"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

const (
	defaultBinary = "restic"
	captureFile   = "last-backup.json"
)

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the restic executable.
func WithBinary(path string) Option {
	return func(c *Client) {
		c.binary = path
	}
}

// Client runs restic commands against a single repository.
type Client struct {
	runner   out.CommandRunner
	repo     domain.RepositoryConfig
	stateDir string
	binary   string
	log      zerowrap.Logger
}

// NewClient creates a restic client. stateDir receives the JSON capture of the last backup.
func NewClient(runner out.CommandRunner, repo domain.RepositoryConfig, stateDir string, log zerowrap.Logger, opts ...Option) *Client {
	c := &Client{
		runner:   runner,
		repo:     repo,
		stateDir: stateDir,
		binary:   defaultBinary,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Env returns the variables every restic invocation needs.
func (c *Client) Env() []string {
	env := []string{"RESTIC_REPOSITORY=" + c.repo.Location}
	if c.repo.Password != "" {
		env = append(env, "RESTIC_PASSWORD="+c.repo.Password)
	} else if c.repo.PasswordFile != "" {
		env = append(env, "RESTIC_PASSWORD_FILE="+c.repo.PasswordFile)
	}
	if c.repo.CacheDir != "" {
		env = append(env, "RESTIC_CACHE_DIR="+c.repo.CacheDir)
	}
	return env
}

// CapturePath is the file holding the JSON output of the most recent backup.
func (c *Client) CapturePath() string {
	return filepath.Join(c.stateDir, captureFile)
}

// IsInitialized probes the repository with `restic cat config`. Any failure means not initialized.
func (c *Client) IsInitialized(ctx context.Context) bool {
	err := c.run(ctx, io.Discard, "cat", "config")
	if err != nil {
		c.log.Debug().Err(err).
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "restic").
			Msg("repository not initialized")
	}
	return err == nil
}

// Initialize creates the repository.
func (c *Client) Initialize(ctx context.Context) error {
	c.log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "restic").
		Str("repository", domain.RedactURI(c.repo.Location)).
		Msg("initializing repository")

	if err := c.run(ctx, nil, "init"); err != nil {
		return domain.NewStepError(domain.StepSnapshot, domain.ExitCodeOf(err),
			fmt.Errorf("%w: restic init: %w", domain.ErrUploadFailed, err))
	}
	return nil
}

// Snapshot backs up artifactPath and returns the parsed summary.
func (c *Client) Snapshot(ctx context.Context, artifactPath string, tags []string) (domain.SnapshotSummary, error) {
	args := []string{"backup", "--json"}
	for _, tag := range tags {
		args = append(args, "--tag", domain.SanitizeTag(tag))
	}
	args = append(args, artifactPath)

	if err := os.MkdirAll(c.stateDir, 0o700); err != nil {
		return domain.SnapshotSummary{}, fmt.Errorf("%w: create state dir: %w", domain.ErrUploadFailed, err)
	}
	capture, err := os.Create(c.CapturePath())
	if err != nil {
		return domain.SnapshotSummary{}, fmt.Errorf("%w: create capture file: %w", domain.ErrUploadFailed, err)
	}

	runErr := c.run(ctx, capture, args...)
	if err := capture.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return domain.SnapshotSummary{}, domain.NewStepError(domain.StepSnapshot, domain.ExitCodeOf(runErr),
			fmt.Errorf("%w: restic backup: %w", domain.ErrUploadFailed, runErr))
	}

	f, err := os.Open(c.CapturePath())
	if err != nil {
		c.log.Warn().Err(err).
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "restic").
			Msg("failed to reopen backup output, summary unavailable")
		return domain.SnapshotSummary{}, nil
	}
	defer f.Close()

	summary, err := ParseSummary(f)
	if err != nil {
		c.log.Warn().Err(err).
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "restic").
			Str("snapshot_id", summary.SnapshotID).
			Msg("backup output truncated, summary may be incomplete")
	}
	return summary, nil
}

// Forget applies the retention policy. Tiers set to 0 are passed through unchanged.
func (c *Client) Forget(ctx context.Context, policy domain.RetentionPolicy, prune bool) error {
	args := []string{
		"forget",
		"--keep-daily", strconv.Itoa(policy.Daily),
		"--keep-weekly", strconv.Itoa(policy.Weekly),
		"--keep-monthly", strconv.Itoa(policy.Monthly),
		"--keep-yearly", strconv.Itoa(policy.Yearly),
	}
	if prune {
		args = append(args, "--prune")
	}

	if err := c.run(ctx, nil, args...); err != nil {
		return domain.NewStepError(domain.StepRetention, domain.ExitCodeOf(err),
			fmt.Errorf("%w: restic forget: %w", domain.ErrRetentionFailed, err))
	}
	return nil
}

type snapshotEntry struct {
	ID      string `json:"id"`
	ShortID string `json:"short_id"`
}

// LatestSnapshotID returns the short id of the newest snapshot, or "" when there is none.
func (c *Client) LatestSnapshotID(ctx context.Context) (string, error) {
	var stdout bytes.Buffer
	if err := c.run(ctx, &stdout, "snapshots", "--json", "--latest", "1"); err != nil {
		return "", fmt.Errorf("restic snapshots: %w", err)
	}

	var entries []snapshotEntry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		return "", fmt.Errorf("decode restic snapshots: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	latest := entries[len(entries)-1]
	if latest.ShortID != "" {
		return latest.ShortID, nil
	}
	if len(latest.ID) > 8 {
		return latest.ID[:8], nil
	}
	return latest.ID, nil
}

// Passthrough runs an arbitrary command with the repository environment and the
// caller's standard streams.
func (c *Client) Passthrough(ctx context.Context, name string, args []string) error {
	return c.runner.Run(ctx, out.Command{
		Name:   name,
		Args:   args,
		Env:    c.Env(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
}

func (c *Client) run(ctx context.Context, stdout io.Writer, args ...string) error {
	c.log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "restic").
		Str(zerowrap.FieldAction, args[0]).
		Msg("running restic")

	return c.runner.Run(ctx, out.Command{
		Name:   c.binary,
		Args:   args,
		Env:    c.Env(),
		Stdout: stdout,
	})
}
