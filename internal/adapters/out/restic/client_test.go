package restic

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snapdb/internal/adapters/out/command"
	"github.com/bnema/snapdb/internal/boundaries/out"
	outmocks "github.com/bnema/snapdb/internal/boundaries/out/mocks"
	"github.com/bnema/snapdb/internal/domain"
)

func newTestClient(t *testing.T, runner out.CommandRunner) *Client {
	t.Helper()
	repo := domain.RepositoryConfig{Location: "s3:s3.example.com/bucket", Password: "pw", CacheDir: "/state/cache"}
	return NewClient(runner, repo, t.TempDir(), zerowrap.Default())
}

func TestClientEnv(t *testing.T) {
	c := NewClient(nil, domain.RepositoryConfig{Location: "/repo", PasswordFile: "/run/secrets/restic"}, "/state", zerowrap.Default())

	assert.Equal(t, []string{
		"RESTIC_REPOSITORY=/repo",
		"RESTIC_PASSWORD_FILE=/run/secrets/restic",
	}, c.Env())
}

func TestIsInitialized(t *testing.T) {
	runner := outmocks.NewMockCommandRunner(t)
	c := newTestClient(t, runner)

	runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(cmd out.Command) bool {
		return cmd.Name == "restic" && assert.ObjectsAreEqual([]string{"cat", "config"}, cmd.Args)
	})).Return(nil).Once()
	assert.True(t, c.IsInitialized(context.Background()))

	runner.EXPECT().Run(mock.Anything, mock.Anything).Return(&command.ExitError{Name: "restic", Code: 10}).Once()
	assert.False(t, c.IsInitialized(context.Background()))
}

func TestSnapshotWritesCaptureAndParsesSummary(t *testing.T) {
	runner := outmocks.NewMockCommandRunner(t)
	c := newTestClient(t, runner)

	runner.EXPECT().Run(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, cmd out.Command) error {
		assert.Equal(t, []string{
			"backup", "--json",
			"--tag", "nightly",
			"--tag", "type=postgres",
			"--tag", "host=db1:5432;db2",
			"/work/postgres/dump.sql",
		}, cmd.Args)
		assert.Contains(t, cmd.Env, "RESTIC_PASSWORD=pw")
		assert.Contains(t, cmd.Env, "RESTIC_CACHE_DIR=/state/cache")
		_, err := io.WriteString(cmd.Stdout, backupStream)
		return err
	})

	summary, err := c.Snapshot(context.Background(), "/work/postgres/dump.sql",
		[]string{"nightly", "type=postgres", "host=db1:5432,db2"})

	require.NoError(t, err)
	assert.Equal(t, "abc123", summary.SnapshotID)
	assert.Equal(t, int64(512), summary.DataAdded)

	captured, err := os.ReadFile(c.CapturePath())
	require.NoError(t, err)
	assert.Equal(t, backupStream, string(captured))
}

func TestSnapshotFailure(t *testing.T) {
	runner := outmocks.NewMockCommandRunner(t)
	c := newTestClient(t, runner)
	runner.EXPECT().Run(mock.Anything, mock.Anything).
		Return(&command.ExitError{Name: "restic", Code: 3, Err: errors.New("exit status 3")})

	_, err := c.Snapshot(context.Background(), "/work/dump.sql", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Equal(t, 3, domain.ExitCodeOf(err))
}

func TestForget(t *testing.T) {
	tests := []struct {
		name     string
		prune    bool
		wantArgs []string
	}{
		{
			name:     "without prune",
			wantArgs: []string{"forget", "--keep-daily", "7", "--keep-weekly", "0", "--keep-monthly", "12", "--keep-yearly", "1"},
		},
		{
			name:     "with prune",
			prune:    true,
			wantArgs: []string{"forget", "--keep-daily", "7", "--keep-weekly", "0", "--keep-monthly", "12", "--keep-yearly", "1", "--prune"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := outmocks.NewMockCommandRunner(t)
			c := newTestClient(t, runner)
			runner.EXPECT().Run(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, cmd out.Command) error {
				assert.Equal(t, tt.wantArgs, cmd.Args)
				return nil
			})

			err := c.Forget(context.Background(), domain.RetentionPolicy{Daily: 7, Weekly: 0, Monthly: 12, Yearly: 1}, tt.prune)
			require.NoError(t, err)
		})
	}
}

func TestForgetFailure(t *testing.T) {
	runner := outmocks.NewMockCommandRunner(t)
	c := newTestClient(t, runner)
	runner.EXPECT().Run(mock.Anything, mock.Anything).Return(&command.ExitError{Name: "restic", Code: 1})

	err := c.Forget(context.Background(), domain.RetentionPolicy{}, true)

	assert.ErrorIs(t, err, domain.ErrRetentionFailed)
	var stepErr *domain.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.StepRetention, stepErr.Step)
}

func TestLatestSnapshotID(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{name: "short id", output: `[{"id":"0123456789abcdef","short_id":"01234567"}]`, want: "01234567"},
		{name: "id only", output: `[{"id":"fedcba9876543210"}]`, want: "fedcba98"},
		{name: "empty repository", output: `[]`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := outmocks.NewMockCommandRunner(t)
			c := newTestClient(t, runner)
			runner.EXPECT().Run(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, cmd out.Command) error {
				assert.Equal(t, []string{"snapshots", "--json", "--latest", "1"}, cmd.Args)
				_, err := io.WriteString(cmd.Stdout, tt.output)
				return err
			})

			id, err := c.LatestSnapshotID(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestLatestSnapshotIDFailure(t *testing.T) {
	runner := outmocks.NewMockCommandRunner(t)
	c := newTestClient(t, runner)
	runner.EXPECT().Run(mock.Anything, mock.Anything).Return(&command.ExitError{Name: "restic", Code: 1})

	id, err := c.LatestSnapshotID(context.Background())

	assert.Error(t, err)
	assert.Empty(t, id)
}

func TestWithBinary(t *testing.T) {
	runner := outmocks.NewMockCommandRunner(t)
	c := NewClient(runner, domain.RepositoryConfig{Location: "/repo", Password: "pw"}, t.TempDir(), zerowrap.Default(), WithBinary("/usr/local/bin/restic"))
	runner.EXPECT().Run(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, cmd out.Command) error {
		assert.Equal(t, "/usr/local/bin/restic", cmd.Name)
		assert.Equal(t, []string{"init"}, cmd.Args)
		return nil
	})

	require.NoError(t, c.Initialize(context.Background()))
}
