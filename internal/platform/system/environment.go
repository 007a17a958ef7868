package system

import (
	"context"
	"io/fs"
)

// Environment is the set of host capabilities provisioning stages depend on.
// Implemented by ExecEnvironment for real machines and MockEnvironment for
// tests.
type Environment interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// InstallPackages installs OS packages non-interactively.
	InstallPackages(ctx context.Context, pkgs ...string) error

	// EnableService enables and starts a systemd unit.
	EnableService(ctx context.Context, unit string) error

	// RestartService restarts a systemd unit.
	RestartService(ctx context.Context, unit string) error

	// WriteFile writes a file, creating parent directories as needed.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// ReadFile reads a file's contents.
	ReadFile(path string) ([]byte, error)

	// FileExists reports whether a path exists.
	FileExists(path string) bool

	// LookPath reports whether a binary is available on PATH.
	LookPath(name string) (string, error)
}
