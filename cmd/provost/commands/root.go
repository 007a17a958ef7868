// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the provost CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provost",
		Short: "Provision and monitor a Linux web server",
	}

	// Provisioning commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Setup())
	cmd.AddCommand(WordPress())

	// Monitoring and alerting
	cmd.AddCommand(Monitor())
	cmd.AddCommand(Notify())

	// Utility commands
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
