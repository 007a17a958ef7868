package commands

import (
	"github.com/spf13/cobra"

	"github.com/provost-sh/provost/cmd/provost/handlers"
)

// Setup returns the command that provisions the server.
func Setup() *cobra.Command {
	var (
		configPath string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision the server",
		Long: `Provision the server: system update, SSH hardening, firewall,
fail2ban, Nginx, PHP-FPM, MySQL, Redis, tunnel agent and monitoring cron
entries.

Completed stages are recorded in a ledger under the state directory, so
re-running after a failure resumes at the failed stage and a finished run
is a no-op.

Examples:
  # Provision using provost.yaml in the current directory
  provost setup

  # Provision using a specific config file, without the progress view
  provost setup -c /etc/provost/provost.yaml --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Setup(cmd.Context(), configPath, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain log output instead of the progress view")

	return cmd
}
