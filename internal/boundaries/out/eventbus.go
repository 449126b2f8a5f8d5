package out

import (
	"context"

	"github.com/bnema/snapdb/internal/domain"
)

// Notifier delivers a run report to an external observer.
type Notifier interface {
	Send(ctx context.Context, report domain.RunReport) error
}

// RunRecorder records run outcomes as metrics.
type RunRecorder interface {
	RecordRun(ctx context.Context, report domain.RunReport)
}
