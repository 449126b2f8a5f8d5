// Package webhook delivers run reports to an HTTP endpoint.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/bnema/snapdb/internal/domain"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// Notifier sends one best-effort request per report. Delivery is never retried.
type Notifier struct {
	cfg    domain.NotifyConfig
	client *resty.Client
	log    zerowrap.Logger
}

// Option configures the Notifier.
type Option func(*Notifier)

// WithClient sets a custom resty client.
func WithClient(client *resty.Client) Option {
	return func(n *Notifier) {
		n.client = client
	}
}

// New creates a webhook notifier.
func New(cfg domain.NotifyConfig, log zerowrap.Logger, opts ...Option) *Notifier {
	if cfg.Method == "" {
		cfg.Method = http.MethodPost
	}
	cfg.Method = strings.ToUpper(cfg.Method)
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	n := &Notifier{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(n)
	}

	if n.client == nil {
		n.client = resty.New()
	}
	n.client.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "snapdb-webhook/1.0")

	return n
}

// Send delivers the report. It is a no-op when no URL is configured.
func (n *Notifier) Send(ctx context.Context, report domain.RunReport) error {
	if !n.cfg.Enabled() {
		return nil
	}

	body, err := json.Marshal(NewPayload(report))
	if err != nil {
		return fmt.Errorf("%w: encode payload: %w", domain.ErrNotificationFailed, err)
	}

	req := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(n.cfg.Headers).
		SetBody(body)
	if n.cfg.AuthHeader != "" {
		req.SetHeader("Authorization", n.cfg.AuthHeader)
	}

	start := time.Now()
	resp, err := req.Execute(n.cfg.Method, n.cfg.URL)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrNotificationFailed, n.cfg.Method, n.cfg.URL, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s %s returned %d", domain.ErrNotificationFailed, n.cfg.Method, n.cfg.URL, resp.StatusCode())
	}

	n.log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "webhook").
		Int(zerowrap.FieldStatus, resp.StatusCode()).
		Dur(zerowrap.FieldDuration, time.Since(start)).
		Msg("run report delivered")

	return nil
}
