package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// fail2ban writes an sshd jail matching the hardened SSH port and starts
// the service.
type fail2ban struct{}

func (s *fail2ban) Name() string { return "fail2ban" }

func (s *fail2ban) Provision(ctx *provision.Context) error {
	jail, err := render("fail2ban", fail2banJailTemplate, map[string]any{
		"Port": ctx.Config.Server.SSHPort,
	})
	if err != nil {
		return err
	}
	if err := ctx.System.WriteFile("/etc/fail2ban/jail.d/provost.conf", jail, 0o644); err != nil {
		return fmt.Errorf("failed to write fail2ban jail: %w", err)
	}
	if err := ctx.System.EnableService(ctx, "fail2ban"); err != nil {
		return fmt.Errorf("failed to enable fail2ban: %w", err)
	}
	if err := ctx.System.RestartService(ctx, "fail2ban"); err != nil {
		return fmt.Errorf("failed to restart fail2ban: %w", err)
	}
	return nil
}
