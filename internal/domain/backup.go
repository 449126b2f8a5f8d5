package domain

import (
	"fmt"
	"strings"
	"time"
)

// Engine identifies the database engine being dumped.
type Engine string

const (
	EnginePostgres Engine = "postgres"
	EngineMySQL    Engine = "mysql"
	EngineMongo    Engine = "mongo"
)

// engineSynonyms maps accepted selector spellings to their engine.
var engineSynonyms = map[string]Engine{
	"postgres":   EnginePostgres,
	"postgresql": EnginePostgres,
	"pg":         EnginePostgres,
	"pgsql":      EnginePostgres,
	"mysql":      EngineMySQL,
	"mariadb":    EngineMySQL,
	"mongo":      EngineMongo,
	"mongodb":    EngineMongo,
}

// Engines returns every supported engine.
func Engines() []Engine {
	return []Engine{EnginePostgres, EngineMySQL, EngineMongo}
}

// ParseEngine normalizes a selector such as "PostgreSQL" or "mariadb".
func ParseEngine(selector string) (Engine, error) {
	key := strings.ToLower(strings.TrimSpace(selector))
	if key == "" {
		return "", fmt.Errorf("%w: DB_TYPE is required", ErrConfiguration)
	}
	engine, ok := engineSynonyms[key]
	if !ok {
		return "", fmt.Errorf("%w: unsupported DB_TYPE %q", ErrConfiguration, selector)
	}
	return engine, nil
}

// DefaultPort returns the engine's conventional TCP port.
func (e Engine) DefaultPort() int {
	switch e {
	case EnginePostgres:
		return 5432
	case EngineMySQL:
		return 3306
	case EngineMongo:
		return 27017
	default:
		return 0
	}
}

func (e Engine) String() string {
	return string(e)
}

// RetentionPolicy defines how many snapshots to keep per calendar tier.
type RetentionPolicy struct {
	Daily   int
	Weekly  int
	Monthly int
	Yearly  int
}

// DumpResult describes the artifact produced by a dump adapter.
type DumpResult struct {
	ArtifactPath string
	Workspace    string
	Engine       Engine
	HostHint     string
}

// SnapshotSummary holds the statistics the snapshot store reports for a backup.
// Every field is zero when the store emitted no summary.
type SnapshotSummary struct {
	SnapshotID           string
	DataAdded            int64
	TotalBytesProcessed  int64
	TotalDurationSeconds int64
	FilesNew             int64
	FilesChanged         int64
	FilesUnmodified      int64
}

// RunStatus is the overall outcome of one backup run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// Phase is a state of the run orchestrator.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseDispatch  Phase = "dispatch"
	PhaseDumping   Phase = "dumping"
	PhaseUploading Phase = "uploading"
	PhaseRetaining Phase = "retaining"
	PhaseReporting Phase = "reporting"
	PhaseFailed    Phase = "failed"
)

// RunReport is the immutable outcome of a single run.
type RunReport struct {
	RunID      string
	Status     RunStatus
	Message    string
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
	Repository string
	Engine     Engine
	Host       string
	Tags       []string
	Summary    SnapshotSummary
}

// DurationSeconds returns the whole seconds between start and finish, never negative.
func (r RunReport) DurationSeconds() int64 {
	d := int64(r.FinishedAt.Sub(r.StartedAt) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Succeeded reports whether every step of the run succeeded.
func (r RunReport) Succeeded() bool {
	return r.Status == RunStatusSuccess
}
