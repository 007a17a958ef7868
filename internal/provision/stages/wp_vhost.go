package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// wpVhost renders the nginx server block for the site, enables it and
// reloads nginx after a config check.
type wpVhost struct{}

func (s *wpVhost) Name() string { return "wp_vhost" }

func (s *wpVhost) Provision(ctx *provision.Context) error {
	domain := ctx.Config.Site.Domain
	vhost, err := render("vhost", nginxVhostTemplate, map[string]any{
		"Domain":     domain,
		"Root":       webroot(ctx),
		"PHPVersion": ctx.Config.Site.PHPVersion,
	})
	if err != nil {
		return err
	}

	available := "/etc/nginx/sites-available/" + domain
	if err := ctx.System.WriteFile(available, vhost, 0o644); err != nil {
		return fmt.Errorf("failed to write vhost: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "ln", "-sf", available, "/etc/nginx/sites-enabled/"+domain); err != nil {
		return fmt.Errorf("failed to enable vhost: %w", err)
	}

	if out, err := ctx.System.Run(ctx, "nginx", "-t"); err != nil {
		return fmt.Errorf("nginx config check failed: %w (%s)", err, out)
	}
	if err := ctx.System.RestartService(ctx, "nginx"); err != nil {
		return fmt.Errorf("failed to restart nginx: %w", err)
	}

	ctx.State.VhostPath = available
	return nil
}
