package commands

import (
	"github.com/spf13/cobra"

	"github.com/provost-sh/provost/cmd/provost/handlers"
)

// WordPress returns the command that installs a WordPress site.
func WordPress() *cobra.Command {
	var (
		configPath string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "wordpress",
		Short: "Install a WordPress site",
		Long: `Install WordPress for the configured domain on an already
provisioned server: download, database, wp-config.php, nginx vhost and
file permissions.

The WordPress pipeline keeps its own ledger, independent of setup's.

Examples:
  provost wordpress
  provost wordpress -c /etc/provost/provost.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.WordPress(cmd.Context(), configPath, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain log output instead of the progress view")

	return cmd
}
