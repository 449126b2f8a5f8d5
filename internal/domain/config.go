package domain

import (
	"strings"
	"time"
)

// DatabaseConfig holds connection parameters for the engine being dumped.
type DatabaseConfig struct {
	Engine       Engine
	Host         string
	Port         int
	User         string
	Password     string `json:"-"`
	Name         string
	URI          string `json:"-"`
	AuthDatabase string
	AllDatabases bool
	WaitTimeout  time.Duration
}

// RepositoryConfig locates the snapshot store and holds its credential.
type RepositoryConfig struct {
	Location     string
	Password     string `json:"-"`
	PasswordFile string
	CacheDir     string
}

// NotifyConfig configures the run report webhook.
type NotifyConfig struct {
	URL        string
	Method     string
	AuthHeader string `json:"-"`
	Headers    map[string]string
	Timeout    time.Duration
}

// Enabled reports whether a webhook endpoint is configured.
func (n NotifyConfig) Enabled() bool {
	return strings.TrimSpace(n.URL) != ""
}

// RunConfig is the immutable configuration of a run, loaded once per process.
type RunConfig struct {
	Database       DatabaseConfig
	Repository     RepositoryConfig
	Tags           []string
	Retention      RetentionPolicy
	PruneOnSuccess bool
	Notify         NotifyConfig
	Schedule       Schedule
	WorkDir        string
	StateDir       string
	RunAsUser      string
}

// ValidateRepository checks the settings every snapshot store operation needs.
func (c RunConfig) ValidateRepository() error {
	if strings.TrimSpace(c.Repository.Location) == "" {
		return ErrRepositoryRequired
	}
	if c.Repository.Password == "" && strings.TrimSpace(c.Repository.PasswordFile) == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ParseList splits a comma-separated list, trimming blanks and dropping empty items.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseHeaders parses "k=v,k2=v2". Pairs without "=" or with an empty key are dropped.
func ParseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range ParseList(raw) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}
