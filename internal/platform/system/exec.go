package system

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExecEnvironment is the real Environment, shelling out to apt-get and
// systemctl on the local machine.
type ExecEnvironment struct{}

// NewExecEnvironment creates an Environment for the local machine.
func NewExecEnvironment() *ExecEnvironment {
	return &ExecEnvironment{}
}

// Run implements Environment.
func (e *ExecEnvironment) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 -- commands come from stage definitions, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, fmt.Errorf("%s %s: %w (%s)", name, strings.Join(args, " "), err, output)
	}
	return output, nil
}

// InstallPackages implements Environment using apt-get.
func (e *ExecEnvironment) InstallPackages(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"install", "-y", "--no-install-recommends"}, pkgs...)
	// #nosec G204 -- package names come from stage definitions
	cmd := exec.CommandContext(ctx, "apt-get", args...)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("apt-get install %s: %w (%s)", strings.Join(pkgs, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// EnableService implements Environment.
func (e *ExecEnvironment) EnableService(ctx context.Context, unit string) error {
	if _, err := e.Run(ctx, "systemctl", "enable", "--now", unit); err != nil {
		return fmt.Errorf("failed to enable %s: %w", unit, err)
	}
	return nil
}

// RestartService implements Environment.
func (e *ExecEnvironment) RestartService(ctx context.Context, unit string) error {
	if _, err := e.Run(ctx, "systemctl", "restart", unit); err != nil {
		return fmt.Errorf("failed to restart %s: %w", unit, err)
	}
	return nil
}

// WriteFile implements Environment.
func (e *ExecEnvironment) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile implements Environment.
func (e *ExecEnvironment) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from stage definitions
	return os.ReadFile(path)
}

// FileExists implements Environment.
func (e *ExecEnvironment) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LookPath implements Environment.
func (e *ExecEnvironment) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
