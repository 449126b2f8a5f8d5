package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snapdb/internal/domain"
)

func newTestKernel(t *testing.T, opts Options) *Kernel {
	t.Helper()
	k, err := NewKernel(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(k.Close)
	return k
}

func TestNewKernel_ResolvesConfiguration(t *testing.T) {
	clearEnv(t)
	stateDir := filepath.Join(t.TempDir(), "state")
	t.Setenv("DB_TYPE", "pg")
	t.Setenv("SNAPDB_STATE_DIR", stateDir)
	t.Setenv("LOG_LEVEL", "error")

	k := newTestKernel(t, Options{})

	assert.Equal(t, domain.EnginePostgres, k.Config().Database.Engine)
	assert.Equal(t, stateDir, k.Config().StateDir)
	assert.DirExists(t, stateDir)
}

func TestNewKernel_ConfigurationError(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("SNAPDB_STATE_DIR", t.TempDir())

	_, err := NewKernel(context.Background(), Options{})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestKernel_RequiresEngineForRuns(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPDB_STATE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	k := newTestKernel(t, Options{})
	ctx := context.Background()

	code, err := k.RunOnce(ctx)
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	code, err = k.Schedule(ctx)
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	code, err = k.RunCron(ctx)
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestKernel_StoreCommandsRequireRepository(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPDB_STATE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	k := newTestKernel(t, Options{})

	assert.ErrorIs(t, k.Init(context.Background()), domain.ErrConfiguration)
	assert.ErrorIs(t, k.Forget(context.Background()), domain.ErrConfiguration)
}

func TestKernel_ExecPropagatesExitCode(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPDB_STATE_DIR", t.TempDir())
	t.Setenv("RESTIC_REPOSITORY", "/srv/repo")
	t.Setenv("LOG_LEVEL", "error")

	k := newTestKernel(t, Options{})

	code, err := k.Exec(context.Background(), "sh", []string{"-c", `test "$RESTIC_REPOSITORY" = /srv/repo && exit 3`})
	assert.Equal(t, 3, code)
	assert.Error(t, err)

	code, err = k.Exec(context.Background(), "sh", []string{"-c", "exit 0"})
	assert.Equal(t, 0, code)
	assert.NoError(t, err)

	code, _ = k.Exec(context.Background(), "", nil)
	assert.Equal(t, 1, code)
}

func TestNewKernel_CronOccurrenceLoadsEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range []string{"DB_TYPE", "DB_NAME"} {
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	t.Setenv("LOG_LEVEL", "error")

	stateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "cron.env"), []byte("DB_TYPE=mongodb\nDB_NAME=events\n"), 0o600))

	k := newTestKernel(t, Options{StateDir: stateDir})

	assert.Equal(t, domain.EngineMongo, k.Config().Database.Engine)
	assert.Equal(t, "events", k.Config().Database.Name)
	assert.Equal(t, stateDir, k.Config().StateDir)
}

func TestNewKernel_CronOccurrenceWithoutEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := NewKernel(context.Background(), Options{StateDir: t.TempDir()})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
