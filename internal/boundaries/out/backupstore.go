package out

import (
	"context"

	"github.com/bnema/snapdb/internal/domain"
)

// Dumper produces a single dump artifact for one database engine.
type Dumper interface {
	Engine() domain.Engine
	// Dump writes the artifact inside workspace, which the caller owns and removes.
	Dump(ctx context.Context, workspace string) (*domain.DumpResult, error)
}

// DatabaseProbe checks that a database accepts connections.
type DatabaseProbe interface {
	Ping(ctx context.Context, db domain.DatabaseConfig) error
}

// SnapshotStore is the incremental, encrypted, content-addressed backup repository.
type SnapshotStore interface {
	IsInitialized(ctx context.Context) bool
	Initialize(ctx context.Context) error
	Snapshot(ctx context.Context, artifactPath string, tags []string) (domain.SnapshotSummary, error)
	Forget(ctx context.Context, policy domain.RetentionPolicy, prune bool) error
	LatestSnapshotID(ctx context.Context) (string, error)
}
