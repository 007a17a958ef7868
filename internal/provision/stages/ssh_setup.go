package stages

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/provost-sh/provost/internal/provision"
	"github.com/provost-sh/provost/internal/util/keygen"
)

// sshSetup creates the admin user with a fresh deploy key and hardens sshd
// through a drop-in config: key-only auth, no root login, custom port.
type sshSetup struct{}

func (s *sshSetup) Name() string { return "ssh_setup" }

func (s *sshSetup) Provision(ctx *provision.Context) error {
	user := ctx.Config.Server.AdminUser
	home := "/home/" + user

	// Create the admin user unless it already exists.
	if _, err := ctx.System.Run(ctx, "id", user); err != nil {
		if _, err := ctx.System.Run(ctx, "useradd", "-m", "-s", "/bin/bash", user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", user, err)
		}
	}
	if _, err := ctx.System.Run(ctx, "usermod", "-aG", "sudo", user); err != nil {
		return fmt.Errorf("failed to grant sudo to %s: %w", user, err)
	}

	kp, err := keygen.GenerateEd25519KeyPair()
	if err != nil {
		return fmt.Errorf("failed to generate deploy key: %w", err)
	}

	sshDir := filepath.Join(home, ".ssh")
	keyPath := filepath.Join(sshDir, "id_ed25519")
	if err := ctx.System.WriteFile(keyPath, kp.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := ctx.System.WriteFile(keyPath+".pub", kp.PublicKey, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	if err := ctx.System.WriteFile(filepath.Join(sshDir, "authorized_keys"), kp.PublicKey, 0o600); err != nil {
		return fmt.Errorf("failed to write authorized_keys: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "chown", "-R", user+":"+user, sshDir); err != nil {
		return fmt.Errorf("failed to chown %s: %w", sshDir, err)
	}

	ctx.State.DeployPublicKey = string(kp.PublicKey)
	ctx.State.DeployPrivateKeyPath = keyPath

	conf, err := render("sshd", sshdConfigTemplate, map[string]any{
		"Port":      ctx.Config.Server.SSHPort,
		"AdminUser": user,
	})
	if err != nil {
		return err
	}
	if err := ctx.System.WriteFile("/etc/ssh/sshd_config.d/99-provost.conf", conf, 0o644); err != nil {
		return fmt.Errorf("failed to write sshd drop-in: %w", err)
	}

	// Refuse to restart sshd with a config it rejects.
	if out, err := ctx.System.Run(ctx, "sshd", "-t"); err != nil {
		return fmt.Errorf("sshd config check failed: %w (%s)", err, out)
	}
	if err := ctx.System.RestartService(ctx, "ssh"); err != nil {
		return fmt.Errorf("failed to restart sshd: %w", err)
	}

	ctx.Observer.Printf("SSH hardened: port %s, user %s, key at %s",
		strconv.Itoa(ctx.Config.Server.SSHPort), user, keyPath)
	return nil
}
