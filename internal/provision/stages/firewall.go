package stages

import (
	"fmt"
	"strconv"

	"github.com/provost-sh/provost/internal/provision"
)

// firewall configures ufw: deny inbound by default, allow SSH on the
// configured port plus HTTP/HTTPS, then enable.
type firewall struct{}

func (s *firewall) Name() string { return "firewall" }

func (s *firewall) Provision(ctx *provision.Context) error {
	rules := [][]string{
		{"default", "deny", "incoming"},
		{"default", "allow", "outgoing"},
		{"allow", strconv.Itoa(ctx.Config.Server.SSHPort) + "/tcp"},
		{"allow", "80/tcp"},
		{"allow", "443/tcp"},
		{"--force", "enable"},
	}
	for _, args := range rules {
		if _, err := ctx.System.Run(ctx, "ufw", args...); err != nil {
			return fmt.Errorf("ufw %v failed: %w", args, err)
		}
	}
	return nil
}
