package crontab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the name of the environment snapshot read by cron occurrences.
const EnvFile = "cron.env"

// volatileEnv lists variables describing the launching shell rather than the configuration.
var volatileEnv = map[string]struct{}{
	"_":        {},
	"HOME":     {},
	"HOSTNAME": {},
	"OLDPWD":   {},
	"PWD":      {},
	"SHLVL":    {},
	"TERM":     {},
}

// EnvStore persists environment variables with godotenv.
type EnvStore struct {
	path string
}

// NewEnvStore creates an env store writing to <stateDir>/cron.env.
func NewEnvStore(stateDir string) *EnvStore {
	return &EnvStore{path: filepath.Join(stateDir, EnvFile)}
}

// Path returns the env file location.
func (s *EnvStore) Path() string {
	return s.path
}

// Save writes env to the file with owner-only permissions.
func (s *EnvStore) Save(env map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create env dir: %w", err)
	}
	if err := godotenv.Write(env, s.path); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("chmod env file: %w", err)
	}
	return nil
}

// Load applies the saved variables to the process environment.
// Variables already set take precedence.
func (s *EnvStore) Load() error {
	if err := godotenv.Load(s.path); err != nil {
		return fmt.Errorf("load env file %s: %w", s.path, err)
	}
	return nil
}

// ProcessEnv returns the current environment without shell bookkeeping variables.
func ProcessEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if _, skip := volatileEnv[key]; skip {
			continue
		}
		env[key] = value
	}
	return env
}
