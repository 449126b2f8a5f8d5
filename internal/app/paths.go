// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"
)

const (
	// DefaultWorkDir is the root of the per-engine dump workspaces.
	DefaultWorkDir = "/tmp/snapdb"
	// DefaultStateDir holds the restic cache, the last JSON capture, the cron env file and logs.
	DefaultStateDir = "/var/lib/snapdb"

	// LogFile is the rotated structured log written by cron occurrences.
	LogFile = "snapdb.log"
)

// logFilePath returns the cron occurrence log file inside stateDir.
func logFilePath(stateDir string) string {
	return filepath.Join(stateDir, LogFile)
}

// selfPath resolves the running executable so cron and privilege drop can re-invoke it.
func selfPath() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			return resolved
		}
		return exe
	}
	return os.Args[0]
}
