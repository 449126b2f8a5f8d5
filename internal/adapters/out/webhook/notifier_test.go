package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snapdb/internal/domain"
)

func testReport() domain.RunReport {
	started := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	return domain.RunReport{
		Status:     domain.RunStatusSuccess,
		Message:    "backup completed",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Repository: "/srv/restic",
		Engine:     domain.EnginePostgres,
		Host:       "db:5432",
		Tags:       []string{"nightly", "type=postgres", "host=db:5432"},
		Summary:    domain.SnapshotSummary{SnapshotID: "abc123", DataAdded: 512, FilesNew: 3},
	}
}

type captured struct {
	method  string
	headers http.Header
	body    map[string]any
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.headers = r.Header.Clone()
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &got.body))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestSendPostsPayload(t *testing.T) {
	srv, got := newCaptureServer(t, http.StatusNoContent)
	n := New(domain.NotifyConfig{
		URL:        srv.URL,
		AuthHeader: "Bearer token",
		Headers:    map[string]string{"X-Team": "ops"},
	}, zerowrap.Default())

	err := n.Send(context.Background(), testReport())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "Bearer token", got.headers.Get("Authorization"))
	assert.Equal(t, "ops", got.headers.Get("X-Team"))
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))

	assert.Equal(t, "success", got.body["status"])
	assert.Equal(t, "2026-03-01T02:00:00Z", got.body["startedAt"])
	assert.Equal(t, "2026-03-01T02:00:42Z", got.body["finishedAt"])
	assert.EqualValues(t, 42, got.body["durationSeconds"])
	assert.Equal(t, "postgres", got.body["dbType"])
	assert.Equal(t, "abc123", got.body["snapshotId"])
	assert.EqualValues(t, 512, got.body["dataAddedBytes"])
	assert.EqualValues(t, 3, got.body["filesNew"])
	assert.EqualValues(t, 0, got.body["filesChanged"])
	assert.Equal(t, []any{"nightly", "type=postgres", "host=db:5432"}, got.body["tags"])
}

func TestSendCustomMethod(t *testing.T) {
	srv, got := newCaptureServer(t, http.StatusOK)
	n := New(domain.NotifyConfig{URL: srv.URL, Method: "put"}, zerowrap.Default())

	require.NoError(t, n.Send(context.Background(), testReport()))
	assert.Equal(t, http.MethodPut, got.method)
}

func TestSendNullSnapshotID(t *testing.T) {
	srv, got := newCaptureServer(t, http.StatusOK)
	n := New(domain.NotifyConfig{URL: srv.URL}, zerowrap.Default())

	report := testReport()
	report.Summary = domain.SnapshotSummary{}
	report.Tags = nil
	require.NoError(t, n.Send(context.Background(), report))

	value, present := got.body["snapshotId"]
	assert.True(t, present)
	assert.Nil(t, value)
	assert.Equal(t, []any{}, got.body["tags"])
}

func TestSendNon2xx(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusInternalServerError)
	n := New(domain.NotifyConfig{URL: srv.URL}, zerowrap.Default())

	err := n.Send(context.Background(), testReport())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
	assert.Contains(t, err.Error(), "500")
}

func TestSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	n := New(domain.NotifyConfig{URL: url, Timeout: time.Second}, zerowrap.Default())
	err := n.Send(context.Background(), testReport())

	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
}

func TestSendDisabled(t *testing.T) {
	n := New(domain.NotifyConfig{}, zerowrap.Default())
	assert.NoError(t, n.Send(context.Background(), testReport()))
}

func TestNewDefaults(t *testing.T) {
	n := New(domain.NotifyConfig{URL: "http://example.invalid"}, zerowrap.Default())

	assert.Equal(t, http.MethodPost, n.cfg.Method)
	assert.Equal(t, DefaultTimeout, n.cfg.Timeout)
}
