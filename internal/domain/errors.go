package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the failure kinds a backup run can end with.
// StepError wraps one of them together with the exit code of the failing step.
var (
	ErrConfiguration      = errors.New("invalid configuration")
	ErrDumpFailed         = errors.New("dump failed")
	ErrUploadFailed       = errors.New("upload failed")
	ErrRetentionFailed    = errors.New("retention failed")
	ErrNotificationFailed = errors.New("notification failed")

	ErrRepositoryRequired = errors.New("RESTIC_REPOSITORY is required")
	ErrPasswordRequired   = errors.New("RESTIC_PASSWORD or RESTIC_PASSWORD_FILE is required")
	ErrNoDumper           = errors.New("no dump adapter for engine")
)

// Step names a unit of work inside a run.
type Step string

const (
	StepDump      Step = "dump"
	StepSnapshot  Step = "snapshot"
	StepRetention Step = "retention"
)

// StepError is returned when an external step fails.
type StepError struct {
	Step     Step
	ExitCode int
	Err      error
}

// NewStepError builds a StepError; exit codes below 1 are raised to 1.
func NewStepError(step Step, exitCode int, err error) *StepError {
	if exitCode < 1 {
		exitCode = 1
	}
	return &StepError{Step: step, ExitCode: exitCode, Err: err}
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step exited with code %d: %v", e.Step, e.ExitCode, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCodeOf extracts the exit code carried by err, or 1 for any other error.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.ExitCode
	}
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
