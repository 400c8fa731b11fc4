package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/MarsLyceum/gcp-microservice-management/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive setup form.
	runWizard = config.RunWizard

	// writeEnvFile writes the collected settings to a .env file.
	writeEnvFile = config.WriteEnvFile
)

// Init runs the setup wizard and writes the result to a .env file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeEnvFile(result.EnvEntries(), outputPath); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	printInitSuccess(outputPath, result)

	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("gcpmsm - Cloud Run + API Gateway deployment")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("This wizard collects the settings the deploy command needs and")
	fmt.Println("writes them to a .env file.")
	fmt.Println()
}

func printInitSuccess(outputPath string, result *config.WizardResult) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Project: %s\n", result.ProjectID)
	fmt.Printf("  Region:  %s\n", result.Region)
	if result.ServiceName != "" {
		fmt.Printf("  Service: %s\n", result.ServiceName)
	}
	if result.GatewayName != "" {
		fmt.Printf("  Gateway: %s\n", result.GatewayName)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Place your service account key next to the .env file,")
	fmt.Println("     or set GOOGLE_APPLICATION_CREDENTIALS")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Deploy:")
	fmt.Println("     gcpmsm deploy")
	fmt.Println()
}
