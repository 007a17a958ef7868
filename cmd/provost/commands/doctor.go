package commands

import (
	"github.com/spf13/cobra"

	"github.com/provost-sh/provost/cmd/provost/handlers"
)

// Doctor returns the command that diagnoses the host.
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the host and configuration",
		Long: `Check the host: configuration presence and validity, required
tools, webhook setup and provisioning progress.

Examples:
  provost doctor
  provost doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
