package backup

import (
	"context"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/domain"
)

// runState carries what one run has produced so far.
type runState struct {
	id           string
	phase        domain.Phase
	startedAt    time.Time
	host         string
	tags         []string
	summary      domain.SnapshotSummary
	snapshotDone bool
}

func (r *runState) enter(ctx context.Context, phase domain.Phase) {
	log := zerowrap.FromCtx(ctx)
	log.Info().
		Str("from", string(r.phase)).
		Str("phase", string(phase)).
		Msg("phase transition")
	r.phase = phase
}

// fail moves the run to the failed phase and returns err unchanged.
func (r *runState) fail(ctx context.Context, err error) error {
	log := zerowrap.FromCtx(ctx)
	log.Error().Err(err).
		Str("failed_phase", string(r.phase)).
		Msg("run step failed")
	r.enter(ctx, domain.PhaseFailed)
	return err
}
