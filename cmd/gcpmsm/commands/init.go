package commands

import (
	"github.com/spf13/cobra"

	"github.com/MarsLyceum/gcp-microservice-management/cmd/gcpmsm/handlers"
)

// Init returns the command that interactively writes a .env file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .env file interactively",
		Long: `Answer a few questions and write the deployment settings to a .env file.

The deploy command discovers this file by walking parent directories from
the current working directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", ".env", "Where to write the env file")

	return cmd
}
