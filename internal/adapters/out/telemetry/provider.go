// Package telemetry exports backup run metrics to an OpenTelemetry collector over OTLP/HTTP.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ExportInterval is how often long-running schedulers push metrics.
// Short-lived runs are exported by Shutdown.
const ExportInterval = 30 * time.Second

// Config holds telemetry configuration.
type Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`   // collector base URL, e.g. "http://localhost:4318"
	AuthToken string `mapstructure:"auth_token"` // base64 "user:pass" sent as Basic auth
}

// Provider owns the SDK meter provider. The zero value is a disabled provider.
type Provider struct {
	mp *sdkmetric.MeterProvider
}

// NewProvider builds an exporting provider, or a disabled one when telemetry is off.
func NewProvider(ctx context.Context, cfg Config, serviceName, version string) (*Provider, error) {
	if !cfg.Enabled || strings.TrimSpace(cfg.Endpoint) == "" {
		return &Provider{}, nil
	}

	opts, err := exporterOptions(cfg)
	if err != nil {
		return nil, err
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(ExportInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return &Provider{mp: mp}, nil
}

// Enabled reports whether metrics are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.mp != nil
}

// MeterProvider returns the exporting provider, or nil when disabled so callers fall
// back to the global noop provider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	if !p.Enabled() {
		return nil
	}
	return p.mp
}

// Shutdown pushes pending data points and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return errors.Join(p.mp.ForceFlush(ctx), p.mp.Shutdown(ctx))
}

// exporterOptions maps the collector URL onto OTLP/HTTP exporter options.
// A path on the URL is kept as a prefix of /v1/metrics.
func exporterOptions(cfg Config) ([]otlpmetrichttp.Option, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse OTLP endpoint: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse OTLP endpoint: missing host in %q", cfg.Endpoint)
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(u.Host)}
	switch u.Scheme {
	case "http":
		opts = append(opts, otlpmetrichttp.WithInsecure())
	case "https":
	default:
		return nil, fmt.Errorf("parse OTLP endpoint: unsupported scheme %q", u.Scheme)
	}
	if prefix := strings.TrimSuffix(u.Path, "/"); prefix != "" {
		opts = append(opts, otlpmetrichttp.WithURLPath(prefix+"/v1/metrics"))
	}
	if cfg.AuthToken != "" {
		opts = append(opts, otlpmetrichttp.WithHeaders(map[string]string{
			"Authorization": "Basic " + cfg.AuthToken,
		}))
	}
	return opts, nil
}
