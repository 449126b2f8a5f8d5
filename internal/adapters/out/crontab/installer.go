// Package crontab installs the snapdb schedule into the OS cron daemon and supervises it.
package crontab

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

// LogFile is the append-only file receiving the output of every cron occurrence.
const LogFile = "cron.log"

// Installer replaces the crontab of the current user with a single snapdb entry.
type Installer struct {
	runner   out.CommandRunner
	stateDir string
	log      zerowrap.Logger
}

// NewInstaller creates a crontab installer.
func NewInstaller(runner out.CommandRunner, stateDir string, log zerowrap.Logger) *Installer {
	return &Installer{runner: runner, stateDir: stateDir, log: log}
}

// LogPath returns the cron output file.
func (i *Installer) LogPath() string {
	return filepath.Join(i.stateDir, LogFile)
}

// Install writes `<expr> <command> >> <log> 2>&1` through `crontab -`.
func (i *Installer) Install(ctx context.Context, schedule domain.Schedule, command []string) error {
	if schedule.Mode != domain.ScheduleCron || schedule.CronExpr == "" {
		return fmt.Errorf("%w: cron expression is required", domain.ErrConfiguration)
	}
	if len(command) == 0 {
		return fmt.Errorf("%w: cron command is required", domain.ErrConfiguration)
	}

	line := Line(schedule.CronExpr, command, i.LogPath())
	if err := i.runner.Run(ctx, out.Command{
		Name:  "crontab",
		Args:  []string{"-"},
		Stdin: strings.NewReader(line),
	}); err != nil {
		return fmt.Errorf("install crontab: %w", err)
	}

	i.log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "crontab").
		Str("expression", schedule.CronExpr).
		Str(zerowrap.FieldPath, i.LogPath()).
		Msg("crontab installed")
	return nil
}

// Line renders the crontab entry, newline terminated as cron requires.
func Line(expr string, command []string, logPath string) string {
	parts := make([]string, 0, len(command))
	for _, arg := range command {
		parts = append(parts, shellQuote(arg))
	}
	return fmt.Sprintf("%s %s >> %s 2>&1\n", strings.TrimSpace(expr), strings.Join(parts, " "), shellQuote(logPath))
}

// shellQuote quotes s for /bin/sh when it contains anything beyond a safe set.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("/._-=:,+@", r):
		return false
	default:
		return true
	}
}
