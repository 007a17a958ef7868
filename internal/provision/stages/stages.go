// Package stages contains the provisioning stage implementations for the
// server setup and WordPress pipelines.
//
// Stages act on the host exclusively through system.Environment, so every
// stage is unit-testable against a mock machine. Stage order is fixed;
// the ledger in the provisioning context decides what actually runs.
package stages

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// ServerStages returns the server provisioning pipeline in execution order.
func ServerStages() []provision.Stage {
	return []provision.Stage{
		&systemUpdate{},
		&basePackages{},
		&sshSetup{},
		&firewall{},
		&fail2ban{},
		&nginx{},
		&php{},
		&mysql{},
		&redis{},
		&tunnelAgent{},
		&monitorCron{},
	}
}

// WordPressStages returns the WordPress pipeline in execution order.
// It runs against its own ledger so the two flows do not interfere.
func WordPressStages() []provision.Stage {
	return []provision.Stage{
		&wpDownload{},
		&wpDatabase{},
		&wpConfig{},
		&wpVhost{},
		&wpPermissions{},
	}
}

// installPackages bounds a package installation with the package-install
// timeout, inside whatever budget the stage context already carries.
func installPackages(ctx *provision.Context, pkgs ...string) error {
	installCtx := ctx.Context
	if d := ctx.Timeouts.PackageInstall; d > 0 {
		var cancel context.CancelFunc
		installCtx, cancel = context.WithTimeout(installCtx, d)
		defer cancel()
	}
	return ctx.System.InstallPackages(installCtx, pkgs...)
}

// randomSecret returns n random bytes hex-encoded, for generated database
// passwords and WordPress salts.
func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
