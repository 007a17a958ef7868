package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

const cloudflaredURL = "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-amd64"

const tunnelUnit = `# Managed by provost.
[Unit]
Description=Cloudflare tunnel agent
After=network-online.target
Wants=network-online.target

[Service]
ExecStart=/usr/local/bin/cloudflared tunnel run
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`

// tunnelAgent installs the cloudflared binary and its systemd unit. The
// tunnel itself still needs a one-time `cloudflared tunnel login` by the
// operator, so the unit is installed but only enabled when a credential
// file is already present.
type tunnelAgent struct{}

func (s *tunnelAgent) Name() string { return "tunnel_agent" }

func (s *tunnelAgent) Provision(ctx *provision.Context) error {
	if _, err := ctx.System.LookPath("cloudflared"); err != nil {
		if _, err := ctx.System.Run(ctx, "curl", "-fsSL", "-o", "/usr/local/bin/cloudflared", cloudflaredURL); err != nil {
			return fmt.Errorf("failed to download cloudflared: %w", err)
		}
		if _, err := ctx.System.Run(ctx, "chmod", "+x", "/usr/local/bin/cloudflared"); err != nil {
			return fmt.Errorf("failed to mark cloudflared executable: %w", err)
		}
	}

	if err := ctx.System.WriteFile("/etc/systemd/system/cloudflared.service", []byte(tunnelUnit), 0o644); err != nil {
		return fmt.Errorf("failed to write cloudflared unit: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}

	if ctx.System.FileExists("/root/.cloudflared/cert.pem") {
		if err := ctx.System.EnableService(ctx, "cloudflared"); err != nil {
			return fmt.Errorf("failed to enable cloudflared: %w", err)
		}
	} else {
		ctx.Observer.Printf("cloudflared installed but not enabled: run 'cloudflared tunnel login' first")
	}
	return nil
}
