package dumper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bnema/zerowrap"

	"github.com/bnema/snapdb/internal/boundaries/out"
	"github.com/bnema/snapdb/internal/domain"
)

const (
	mongoDumpDir      = "dump"
	mongoArtifactName = "dump.tar.gz"
	mongoConfigName   = "mongodump.yaml"
)

// Mongo dumps with mongodump and packs the output directory into a reproducible archive.
type Mongo struct {
	runner out.CommandRunner
	db     domain.DatabaseConfig
	log    zerowrap.Logger
}

// NewMongo creates the MongoDB dump adapter.
func NewMongo(runner out.CommandRunner, db domain.DatabaseConfig, log zerowrap.Logger) *Mongo {
	return &Mongo{runner: runner, db: db, log: log}
}

// Engine returns domain.EngineMongo.
func (m *Mongo) Engine() domain.Engine {
	return domain.EngineMongo
}

// Dump runs mongodump into <workspace>/dump and archives it to <workspace>/dump.tar.gz.
func (m *Mongo) Dump(ctx context.Context, workspace string) (*domain.DumpResult, error) {
	configPath, err := m.writeConfig(workspace)
	if err != nil {
		return nil, domain.NewStepError(domain.StepDump, 1, fmt.Errorf("%w: write mongodump config: %w", domain.ErrDumpFailed, err))
	}
	if configPath != "" {
		defer os.Remove(configPath)
	}

	dumpDir := filepath.Join(workspace, mongoDumpDir)
	if err := runDump(ctx, m.runner, m.log, m.command(dumpDir, configPath)); err != nil {
		return nil, err
	}

	artifact := filepath.Join(workspace, mongoArtifactName)
	if err := WriteArchive(dumpDir, artifact); err != nil {
		return nil, domain.NewStepError(domain.StepDump, 1, fmt.Errorf("%w: archive mongodump output: %w", domain.ErrDumpFailed, err))
	}
	if err := os.RemoveAll(dumpDir); err != nil {
		m.log.Warn().Err(err).
			Str(zerowrap.FieldLayer, "adapter").
			Str(zerowrap.FieldAdapter, "dumper").
			Str(zerowrap.FieldPath, dumpDir).
			Msg("failed to remove mongodump output directory")
	}

	return &domain.DumpResult{
		ArtifactPath: artifact,
		Workspace:    workspace,
		Engine:       domain.EngineMongo,
		HostHint:     domain.HostHint(m.db),
	}, nil
}

// writeConfig stores the URI or password in a 0600 mongodump config file so they stay
// off the process list. It returns "" when there is nothing secret to pass.
func (m *Mongo) writeConfig(workspace string) (string, error) {
	var body string
	switch {
	case m.db.URI != "":
		body = "uri: " + strconv.Quote(m.db.URI) + "\n"
	case m.db.Password != "":
		body = "password: " + strconv.Quote(m.db.Password) + "\n"
	default:
		return "", nil
	}

	// Go quoting only emits escapes that YAML double-quoted scalars also accept.
	path := filepath.Join(workspace, mongoConfigName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (m *Mongo) command(dumpDir, configPath string) out.Command {
	args := []string{"--out=" + dumpDir}
	if configPath != "" {
		args = append(args, "--config="+configPath)
	}
	if m.db.URI == "" {
		args = append(args,
			"--host="+hostOrDefault(m.db),
			"--port="+portOrDefault(m.db, domain.EngineMongo),
		)
		if m.db.User != "" {
			args = append(args, "--username="+m.db.User)
		}
		if m.db.AuthDatabase != "" {
			args = append(args, "--authenticationDatabase="+m.db.AuthDatabase)
		}
	}
	if m.db.Name != "" && !m.db.AllDatabases {
		args = append(args, "--db="+m.db.Name)
	}
	return out.Command{Name: "mongodump", Args: args}
}
