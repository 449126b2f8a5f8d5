// Package dbprobe checks database reachability with each engine's native driver.
package dbprobe

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/cenkalti/backoff/v4"

	"github.com/bnema/snapdb/internal/domain"
)

// DefaultInterval is the delay between two connection attempts.
const DefaultInterval = 2 * time.Second

// PingFunc performs a single connection attempt.
type PingFunc func(ctx context.Context, db domain.DatabaseConfig) error

// Prober waits until the configured database accepts connections.
type Prober struct {
	interval time.Duration
	pingers  map[domain.Engine]PingFunc
	log      zerowrap.Logger
}

// Option configures the Prober.
type Option func(*Prober)

// WithInterval sets the delay between attempts.
func WithInterval(interval time.Duration) Option {
	return func(p *Prober) {
		p.interval = interval
	}
}

// WithPinger replaces the connection attempt for one engine.
func WithPinger(engine domain.Engine, fn PingFunc) Option {
	return func(p *Prober) {
		p.pingers[engine] = fn
	}
}

// New creates a prober using pgx, go-sql-driver/mysql and the mongo driver.
func New(log zerowrap.Logger, opts ...Option) *Prober {
	p := &Prober{
		interval: DefaultInterval,
		pingers: map[domain.Engine]PingFunc{
			domain.EnginePostgres: pingPostgres,
			domain.EngineMySQL:    pingMySQL,
			domain.EngineMongo:    pingMongo,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping retries until the database answers or db.WaitTimeout elapses.
// A non-positive timeout means a single attempt.
func (p *Prober) Ping(ctx context.Context, db domain.DatabaseConfig) error {
	ping, ok := p.pingers[db.Engine]
	if !ok {
		return fmt.Errorf("%w: no probe for engine %q", domain.ErrConfiguration, db.Engine)
	}

	if db.WaitTimeout <= 0 {
		return ping(ctx, db)
	}

	waitCtx, cancel := context.WithTimeout(ctx, db.WaitTimeout)
	defer cancel()

	attempts := 0
	var lastErr error
	operation := func() error {
		attempts++
		lastErr = ping(waitCtx, db)
		return lastErr
	}
	notify := func(err error, next time.Duration) {
		p.log.Debug().Err(err).
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "dbprobe").
			Str(zerowrap.FieldHost, domain.HostHint(db)).
			Int("attempt", attempts).
			Dur("retry_in", next).
			Msg("database not reachable yet")
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(p.interval), waitCtx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		if lastErr != nil {
			err = lastErr
		}
		return fmt.Errorf("database %s not reachable after %s: %w", domain.HostHint(db), db.WaitTimeout, err)
	}

	p.log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "dbprobe").
		Str(zerowrap.FieldHost, domain.HostHint(db)).
		Int("attempts", attempts).
		Msg("database reachable")
	return nil
}
