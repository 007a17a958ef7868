package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// nginx installs the web server and removes the distro's default site.
// Site vhosts are rendered later by the WordPress pipeline.
type nginx struct{}

func (s *nginx) Name() string { return "nginx" }

func (s *nginx) Provision(ctx *provision.Context) error {
	if err := installPackages(ctx, "nginx"); err != nil {
		return fmt.Errorf("failed to install nginx: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "rm", "-f", "/etc/nginx/sites-enabled/default"); err != nil {
		return fmt.Errorf("failed to remove default site: %w", err)
	}
	if err := ctx.System.EnableService(ctx, "nginx"); err != nil {
		return fmt.Errorf("failed to enable nginx: %w", err)
	}
	return nil
}
