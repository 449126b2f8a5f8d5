package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/snapdb/internal/domain"
)

// Metrics holds snapdb run instruments.
type Metrics struct {
	RunsTotal    metric.Int64Counter
	RunDuration  metric.Float64Histogram
	BytesAdded   metric.Int64Counter
	BytesScanned metric.Int64Counter

	FilesNew        metric.Int64Counter
	FilesChanged    metric.Int64Counter
	FilesUnmodified metric.Int64Counter
}

// NewMetrics creates and registers the run instruments on provider.
// A nil provider uses the global one; OTel returns noop instruments when none is set.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("snapdb")
	m := &Metrics{}
	var err error

	if m.RunsTotal, err = meter.Int64Counter("snapdb.run.total",
		metric.WithDescription("Total number of backup runs")); err != nil {
		return nil, err
	}
	if m.RunDuration, err = meter.Float64Histogram("snapdb.run.duration_seconds",
		metric.WithDescription("Backup run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 10, 30, 60, 300, 900, 1800, 3600)); err != nil {
		return nil, err
	}
	if m.BytesAdded, err = meter.Int64Counter("snapdb.snapshot.bytes_added",
		metric.WithDescription("Bytes added to the repository"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if m.BytesScanned, err = meter.Int64Counter("snapdb.snapshot.bytes_processed",
		metric.WithDescription("Bytes read while creating snapshots"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if m.FilesNew, err = meter.Int64Counter("snapdb.snapshot.files_new",
		metric.WithDescription("New files stored in snapshots")); err != nil {
		return nil, err
	}
	if m.FilesChanged, err = meter.Int64Counter("snapdb.snapshot.files_changed",
		metric.WithDescription("Changed files stored in snapshots")); err != nil {
		return nil, err
	}
	if m.FilesUnmodified, err = meter.Int64Counter("snapdb.snapshot.files_unmodified",
		metric.WithDescription("Unmodified files seen by snapshots")); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRun records one completed run.
func (m *Metrics) RecordRun(ctx context.Context, report domain.RunReport) {
	attrs := metric.WithAttributes(
		attribute.String("engine", report.Engine.String()),
		attribute.String("status", string(report.Status)),
	)

	m.RunsTotal.Add(ctx, 1, attrs)
	m.RunDuration.Record(ctx, float64(report.DurationSeconds()), attrs)

	if !report.Succeeded() {
		return
	}
	engine := metric.WithAttributes(attribute.String("engine", report.Engine.String()))
	m.BytesAdded.Add(ctx, report.Summary.DataAdded, engine)
	m.BytesScanned.Add(ctx, report.Summary.TotalBytesProcessed, engine)
	m.FilesNew.Add(ctx, report.Summary.FilesNew, engine)
	m.FilesChanged.Add(ctx, report.Summary.FilesChanged, engine)
	m.FilesUnmodified.Add(ctx, report.Summary.FilesUnmodified, engine)
}
