package commands

import (
	"github.com/spf13/cobra"

	"github.com/provost-sh/provost/cmd/provost/handlers"
)

// Notify returns the command that sends a one-off webhook message.
func Notify() *cobra.Command {
	var (
		configPath string
		title      string
		severity   string
	)

	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Send a message through the configured webhook",
		Long: `Send a one-off message through the configured webhook.

Useful for verifying webhook delivery during setup and for external
scripts that want to reuse provost's delivery policy.

Examples:
  provost notify "backup completed"
  provost notify --severity critical --title "Backup" "nightly backup failed"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Notify(cmd.Context(), configPath, title, args[0], severity)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().StringVar(&title, "title", "provost", "Message title")
	cmd.Flags().StringVar(&severity, "severity", "info", "Message severity: info, warn or critical")

	return cmd
}
