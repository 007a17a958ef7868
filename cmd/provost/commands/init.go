package commands

import (
	"github.com/spf13/cobra"

	"github.com/provost-sh/provost/cmd/provost/handlers"
	"github.com/provost-sh/provost/internal/config"
)

// Init returns the command that creates a configuration file through the
// interactive wizard.
func Init() *cobra.Command {
	var (
		outputPath string
		advanced   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create a provost configuration file.

The wizard asks for the admin user, SSH port, site domain, PHP version,
webhook URL and alert thresholds; everything else gets a default.
With --advanced it also covers the site database, monitoring schedules,
report hour and state directory.

Examples:
  # Create provost.yaml in the current directory
  provost init

  # Write to a different path
  provost init -o /etc/provost/provost.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, advanced)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Path for the generated configuration file")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Ask for the advanced settings as well")

	return cmd
}
