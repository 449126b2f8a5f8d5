package dumper

import (
	"context"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

// MySQL dumps MySQL and MariaDB servers with mysqldump.
type MySQL struct {
	runner out.CommandRunner
	db     domain.DatabaseConfig
	log    zerowrap.Logger
}

// NewMySQL creates the MySQL dump adapter.
func NewMySQL(runner out.CommandRunner, db domain.DatabaseConfig, log zerowrap.Logger) *MySQL {
	return &MySQL{runner: runner, db: db, log: log}
}

// Engine returns domain.EngineMySQL.
func (m *MySQL) Engine() domain.Engine {
	return domain.EngineMySQL
}

// Dump writes a single-transaction SQL dump to <workspace>/dump.sql.
func (m *MySQL) Dump(ctx context.Context, workspace string) (*domain.DumpResult, error) {
	artifact := sqlArtifact(workspace)
	if err := runDump(ctx, m.runner, m.log, m.command(artifact)); err != nil {
		return nil, err
	}

	return &domain.DumpResult{
		ArtifactPath: artifact,
		Workspace:    workspace,
		Engine:       domain.EngineMySQL,
		HostHint:     domain.HostHint(m.db),
	}, nil
}

func (m *MySQL) command(artifact string) out.Command {
	args := []string{
		"--single-transaction",
		"--skip-comments",
		"--skip-dump-date",
		"--result-file=" + artifact,
		"--host=" + hostOrDefault(m.db),
		"--port=" + portOrDefault(m.db, domain.EngineMySQL),
	}
	if m.db.User != "" {
		args = append(args, "--user="+m.db.User)
	}
	if m.db.AllDatabases || m.db.Name == "" {
		args = append(args, "--all-databases")
	} else {
		args = append(args, m.db.Name)
	}

	cmd := out.Command{Name: "mysqldump", Args: args}
	if m.db.Password != "" {
		cmd.Env = []string{"MYSQL_PWD=" + m.db.Password}
	}
	return cmd
}
