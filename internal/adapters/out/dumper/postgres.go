package dumper

import (
	"context"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

// Postgres dumps with pg_dump, or pg_dumpall when every database is requested.
type Postgres struct {
	runner out.CommandRunner
	db     domain.DatabaseConfig
	log    zerowrap.Logger
}

// NewPostgres creates the PostgreSQL dump adapter.
func NewPostgres(runner out.CommandRunner, db domain.DatabaseConfig, log zerowrap.Logger) *Postgres {
	return &Postgres{runner: runner, db: db, log: log}
}

// Engine returns domain.EnginePostgres.
func (p *Postgres) Engine() domain.Engine {
	return domain.EnginePostgres
}

// Dump writes a plain SQL dump to <workspace>/dump.sql.
func (p *Postgres) Dump(ctx context.Context, workspace string) (*domain.DumpResult, error) {
	artifact := sqlArtifact(workspace)
	if err := runDump(ctx, p.runner, p.log, p.command(artifact)); err != nil {
		return nil, err
	}

	return &domain.DumpResult{
		ArtifactPath: artifact,
		Workspace:    workspace,
		Engine:       domain.EnginePostgres,
		HostHint:     domain.HostHint(p.db),
	}, nil
}

func (p *Postgres) command(artifact string) out.Command {
	cmd := out.Command{Name: "pg_dump"}
	args := []string{"--no-owner", "--no-comments"}
	if p.dumpAll() {
		cmd.Name = "pg_dumpall"
		args = []string{"--no-comments"}
	}
	args = append(args, "--file", artifact)

	if p.db.URI != "" {
		args = append(args, "--dbname", p.db.URI)
	} else {
		args = append(args, "--host", hostOrDefault(p.db), "--port", portOrDefault(p.db, domain.EnginePostgres))
		if p.db.User != "" {
			args = append(args, "--username", p.db.User)
		}
		if !p.dumpAll() {
			args = append(args, p.db.Name)
		}
	}

	if p.db.Password != "" {
		cmd.Env = []string{"PGPASSWORD=" + p.db.Password}
	}
	cmd.Args = args
	return cmd
}

// dumpAll reports whether pg_dumpall is needed. A URI names its own database.
func (p *Postgres) dumpAll() bool {
	if p.db.AllDatabases {
		return true
	}
	return p.db.URI == "" && p.db.Name == ""
}
