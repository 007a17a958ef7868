package system

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// MockEnvironment is a scriptable Environment for tests. It records every
// call and serves canned results keyed by command prefix.
type MockEnvironment struct {
	// Commands records every Run/InstallPackages/EnableService/RestartService
	// invocation as a single space-joined string.
	Commands []string

	// Files maps path -> written content.
	Files map[string][]byte

	// Modes maps path -> permission the file was written with.
	Modes map[string]fs.FileMode

	// RunResults maps a command prefix to its canned output.
	RunResults map[string]string

	// RunErrors maps a command prefix to an error to return.
	RunErrors map[string]error

	// MissingBinaries makes LookPath fail for the named binaries.
	MissingBinaries map[string]bool

	// ExistingPaths makes FileExists return true for the named paths.
	ExistingPaths map[string]bool
}

// NewMockEnvironment creates an empty mock.
func NewMockEnvironment() *MockEnvironment {
	return &MockEnvironment{
		Files:           make(map[string][]byte),
		Modes:           make(map[string]fs.FileMode),
		RunResults:      make(map[string]string),
		RunErrors:       make(map[string]error),
		MissingBinaries: make(map[string]bool),
		ExistingPaths:   make(map[string]bool),
	}
}

// Ran reports whether any recorded command starts with the given prefix.
func (m *MockEnvironment) Ran(prefix string) bool {
	for _, c := range m.Commands {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Run implements Environment.
func (m *MockEnvironment) Run(_ context.Context, name string, args ...string) (string, error) {
	cmd := strings.TrimSpace(name + " " + strings.Join(args, " "))
	m.Commands = append(m.Commands, cmd)

	for prefix, err := range m.RunErrors {
		if strings.HasPrefix(cmd, prefix) {
			return "", err
		}
	}
	for prefix, out := range m.RunResults {
		if strings.HasPrefix(cmd, prefix) {
			return out, nil
		}
	}
	return "", nil
}

// InstallPackages implements Environment.
func (m *MockEnvironment) InstallPackages(ctx context.Context, pkgs ...string) error {
	_, err := m.Run(ctx, "apt-get", append([]string{"install"}, pkgs...)...)
	return err
}

// EnableService implements Environment.
func (m *MockEnvironment) EnableService(ctx context.Context, unit string) error {
	_, err := m.Run(ctx, "systemctl", "enable", unit)
	return err
}

// RestartService implements Environment.
func (m *MockEnvironment) RestartService(ctx context.Context, unit string) error {
	_, err := m.Run(ctx, "systemctl", "restart", unit)
	return err
}

// WriteFile implements Environment.
func (m *MockEnvironment) WriteFile(path string, data []byte, perm fs.FileMode) error {
	m.Files[path] = data
	m.Modes[path] = perm
	return nil
}

// ReadFile implements Environment.
func (m *MockEnvironment) ReadFile(path string) ([]byte, error) {
	if data, ok := m.Files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("mock: no file at %s", path)
}

// FileExists implements Environment.
func (m *MockEnvironment) FileExists(path string) bool {
	if m.ExistingPaths[path] {
		return true
	}
	_, ok := m.Files[path]
	return ok
}

// LookPath implements Environment.
func (m *MockEnvironment) LookPath(name string) (string, error) {
	if m.MissingBinaries[name] {
		return "", fmt.Errorf("mock: %s not on PATH", name)
	}
	return "/usr/bin/" + name, nil
}
