package commands

import (
	"github.com/spf13/cobra"

	"github.com/provost-sh/provost/cmd/provost/handlers"
)

// Monitor returns the parent command for the monitoring checks.
func Monitor() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run monitoring checks",
		Long: `Run monitoring checks against the configured webhook.

The subcommands are designed for cron: each invocation runs one check to
completion and exits. 'daemon' is the alternative for hosts that prefer a
long-running process with in-process scheduling and Prometheus metrics.`,
	}

	cmd.AddCommand(monitorResources())
	cmd.AddCommand(monitorSecurity())
	cmd.AddCommand(monitorReport())
	cmd.AddCommand(monitorDaemon())

	return cmd
}

func monitorResources() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Check CPU, memory and disk against thresholds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.MonitorResources(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Bypass thresholds and send a synthetic status message")

	return cmd
}

func monitorSecurity() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "security",
		Short: "Check failed SSH logins, fail2ban bans and listening ports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.MonitorSecurity(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Bypass checks and send a synthetic status message")

	return cmd
}

func monitorReport() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send the daily status report if due",
		Long: `Send the daily status report.

The report goes out at most once per calendar date, the first time a run
happens at or after the configured report hour. A missed schedule tick is
made up by the next run on the same day.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.MonitorReport(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Send the report regardless of the daily gate")

	return cmd
}

func monitorDaemon() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run all checks on their cron schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.MonitorDaemon(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: provost.yaml)")

	return cmd
}
