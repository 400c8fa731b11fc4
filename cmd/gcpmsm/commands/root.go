// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the gcpmsm CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcpmsm",
		Short: "Deploy microservices to Cloud Run behind API Gateway",
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())

	return cmd
}
