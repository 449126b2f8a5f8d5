// Package in defines input ports (use case interfaces) driven by the CLI.
package in

import (
	"context"

	"github.com/bnema/snapdb/internal/domain"
)

// BackupService defines backup orchestration use cases.
type BackupService interface {
	// Run executes one full backup attempt. The report is nil only for configuration errors.
	Run(ctx context.Context) (*domain.RunReport, error)
	Initialize(ctx context.Context) error
	Forget(ctx context.Context) error
}

// Scheduler drives BackupService according to the configured schedule.
type Scheduler interface {
	Start(ctx context.Context) (int, error)
}
