package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// systemUpdate refreshes the package index, applies pending upgrades and
// sets the configured timezone.
type systemUpdate struct{}

func (s *systemUpdate) Name() string { return "system_update" }

func (s *systemUpdate) Provision(ctx *provision.Context) error {
	if _, err := ctx.System.Run(ctx, "apt-get", "update"); err != nil {
		return fmt.Errorf("failed to update package index: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "apt-get", "-y", "upgrade"); err != nil {
		return fmt.Errorf("failed to upgrade packages: %w", err)
	}

	if tz := ctx.Config.Server.Timezone; tz != "" {
		if _, err := ctx.System.Run(ctx, "timedatectl", "set-timezone", tz); err != nil {
			return fmt.Errorf("failed to set timezone %s: %w", tz, err)
		}
	}
	return nil
}
