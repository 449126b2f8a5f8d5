// Package dumper implements the per-engine dump adapters.
package dumper

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

const sqlArtifactName = "dump.sql"

// All returns one adapter per supported engine, all bound to the same connection settings.
func All(runner out.CommandRunner, db domain.DatabaseConfig, log zerowrap.Logger) []out.Dumper {
	return []out.Dumper{
		NewPostgres(runner, db, log),
		NewMySQL(runner, db, log),
		NewMongo(runner, db, log),
	}
}

// runDump executes a dump tool and converts its failure into a dump step error.
func runDump(ctx context.Context, runner out.CommandRunner, log zerowrap.Logger, cmd out.Command) error {
	log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "dumper").
		Str("tool", cmd.Name).
		Msg("running dump tool")

	if err := runner.Run(ctx, cmd); err != nil {
		return domain.NewStepError(domain.StepDump, domain.ExitCodeOf(err),
			fmt.Errorf("%w: %s: %w", domain.ErrDumpFailed, cmd.Name, err))
	}
	return nil
}

func sqlArtifact(workspace string) string {
	return filepath.Join(workspace, sqlArtifactName)
}

func portOrDefault(db domain.DatabaseConfig, engine domain.Engine) string {
	if db.Port > 0 {
		return strconv.Itoa(db.Port)
	}
	return strconv.Itoa(engine.DefaultPort())
}

func hostOrDefault(db domain.DatabaseConfig) string {
	if db.Host != "" {
		return db.Host
	}
	return "localhost"
}
