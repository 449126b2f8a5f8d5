// Package schedule drives backup runs once, on a fixed interval, or through the OS cron daemon.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/robfig/cron/v3"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

// CronSupport groups the collaborators needed for cron mode.
type CronSupport struct {
	Installer out.CronInstaller
	Daemon    out.CronDaemon
	EnvStore  out.EnvStore
	// Env is persisted for the cron occurrences.
	Env map[string]string
	// Command is the entry installed in the crontab, e.g. [/usr/local/bin/snapdb run-cron].
	Command []string
}

// Scheduler runs backups according to a schedule.
type Scheduler struct {
	schedule domain.Schedule
	executor out.Executor
	cron     CronSupport
	log      zerowrap.Logger
	nowFn    func() time.Time
}

// NewScheduler creates a scheduler instance.
func NewScheduler(schedule domain.Schedule, executor out.Executor, cronSupport CronSupport, log zerowrap.Logger) *Scheduler {
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}
	return &Scheduler{
		schedule: schedule,
		executor: executor,
		cron:     cronSupport,
		log:      log,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Start runs the configured mode. Once mode returns the run's exit code; interval mode
// returns when ctx is cancelled; cron mode returns when the daemon stops.
func (s *Scheduler) Start(ctx context.Context) (int, error) {
	s.log.Info().
		Str(zerowrap.FieldLayer, "usecase").
		Str(zerowrap.FieldUseCase, "Schedule").
		Str("mode", string(s.schedule.Mode)).
		Msg("starting scheduler")

	switch s.schedule.Mode {
	case domain.ScheduleOnce:
		return s.executor.RunOnce(ctx)
	case domain.ScheduleInterval:
		return 0, s.runEvery(ctx, s.schedule.Interval)
	case domain.ScheduleCron:
		if err := s.startCron(ctx); err != nil {
			return 1, err
		}
		return 0, nil
	default:
		return 1, fmt.Errorf("%w: unsupported schedule mode %q", domain.ErrConfiguration, s.schedule.Mode)
	}
}

// runEvery runs, then sleeps interval, regardless of the outcome, until ctx is done.
func (s *Scheduler) runEvery(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", domain.ErrConfiguration)
	}

	for {
		if ctx.Err() != nil {
			s.log.Info().Msg("scheduler stopped")
			return nil
		}

		code, err := s.executor.RunOnce(ctx)
		next := s.nowFn().Add(interval)
		if err != nil || code != 0 {
			s.log.Warn().Err(err).
				Int("exit_code", code).
				Time("next_run", next.In(s.schedule.Location)).
				Msg("scheduled backup failed")
		} else {
			s.log.Info().
				Time("next_run", next.In(s.schedule.Location)).
				Msg("scheduled backup completed")
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
}

func (s *Scheduler) startCron(ctx context.Context) error {
	sched, err := ParseCron(s.schedule.CronExpr)
	if err != nil {
		return err
	}
	if s.cron.Installer == nil || s.cron.Daemon == nil || s.cron.EnvStore == nil {
		return fmt.Errorf("%w: cron mode is not available", domain.ErrConfiguration)
	}

	if err := s.cron.EnvStore.Save(s.cron.Env); err != nil {
		return fmt.Errorf("persist cron environment: %w", err)
	}
	if err := s.cron.Installer.Install(ctx, s.schedule, s.cron.Command); err != nil {
		return err
	}

	s.log.Info().
		Str("expression", s.schedule.CronExpr).
		Time("next_run", NextRun(sched, s.nowFn(), s.schedule.Location)).
		Msg("cron schedule installed")

	return s.cron.Daemon.Run(ctx)
}

// ParseCron validates a standard five-field expression or a descriptor such as @daily.
func ParseCron(expr string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid BACKUP_CRON %q: %w", domain.ErrConfiguration, expr, err)
	}
	return sched, nil
}

// NextRun returns the next activation after now, evaluated in loc.
func NextRun(sched cron.Schedule, now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return sched.Next(now.In(loc))
}
