package domain

import "time"

// ScheduleMode selects how the scheduler drives runs.
type ScheduleMode string

const (
	ScheduleOnce     ScheduleMode = "once"
	ScheduleInterval ScheduleMode = "interval"
	ScheduleCron     ScheduleMode = "cron"
)

// Schedule describes when runs happen. A cron expression takes precedence over an interval.
type Schedule struct {
	Mode     ScheduleMode
	Interval time.Duration
	CronExpr string
	Location *time.Location
}

// NewSchedule resolves the schedule mode from the configured interval and cron expression.
func NewSchedule(interval time.Duration, cronExpr string, loc *time.Location) Schedule {
	if loc == nil {
		loc = time.UTC
	}
	switch {
	case cronExpr != "":
		return Schedule{Mode: ScheduleCron, CronExpr: cronExpr, Location: loc}
	case interval > 0:
		return Schedule{Mode: ScheduleInterval, Interval: interval, Location: loc}
	default:
		return Schedule{Mode: ScheduleOnce, Location: loc}
	}
}
