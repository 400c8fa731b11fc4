package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	ProjectID        string
	Region           string
	ServiceName      string
	APIID            string
	APIConfigID      string
	GatewayName      string
	OpenAPISpecPath  string
	CloudSQLInstance string
}

// RunWizard collects deployment settings interactively.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Region: "us-east1",
	}

	form := huh.NewForm(
		// Project and region
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("The Google Cloud project to deploy into").
				Placeholder("my-project").
				Value(&result.ProjectID).
				Validate(validateRequired("project id")),

			huh.NewInput().
				Title("Region").
				Description("Region for the Cloud Run service and gateway").
				Value(&result.Region).
				Validate(validateRequired("region")),
		),

		// Service
		huh.NewGroup(
			huh.NewInput().
				Title("Service name").
				Description("Cloud Run service; also names the container image").
				Placeholder("orders").
				Value(&result.ServiceName).
				Validate(validateName("service name")),
		),

		// Gateway chain
		huh.NewGroup(
			huh.NewInput().
				Title("API id (optional)").
				Description("Gateway API id. Leave empty to skip the gateway chain.").
				Placeholder("orders-api").
				Value(&result.APIID),

			huh.NewInput().
				Title("API config id").
				Placeholder("orders-config").
				Value(&result.APIConfigID),

			huh.NewInput().
				Title("Gateway name").
				Placeholder("orders-gw").
				Value(&result.GatewayName),

			huh.NewInput().
				Title("OpenAPI spec path").
				Description("Path to the OpenAPI document for the API config").
				Placeholder("openapi.yaml").
				Value(&result.OpenAPISpecPath),
		),

		// Optional Cloud SQL attachment
		huh.NewGroup(
			huh.NewInput().
				Title("Cloud SQL instance (optional)").
				Description("Connection name like project:region:instance. Leave empty to skip.").
				Value(&result.CloudSQLInstance),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// EnvEntries converts the wizard result to dotenv key/value pairs using the
// variable names the deploy command reads.
func (r *WizardResult) EnvEntries() map[string]string {
	entries := map[string]string{
		"GOOGLE_CLOUD_PROJECT": r.ProjectID,
		"GCPMSM_REGION":        r.Region,
		"GCPMSM_SERVICE":       r.ServiceName,
	}
	if r.APIID != "" {
		entries["GCPMSM_API"] = r.APIID
		entries["GCPMSM_API_CONFIG"] = r.APIConfigID
		entries["GCPMSM_GATEWAY"] = r.GatewayName
		entries["GCPMSM_OPENAPI_SPEC"] = r.OpenAPISpecPath
	}
	if r.CloudSQLInstance != "" {
		entries["GCPMSM_CLOUDSQL_INSTANCE"] = r.CloudSQLInstance
	}
	return entries
}

// WriteEnvFile writes dotenv entries to path, sorted by key.
func WriteEnvFile(entries map[string]string, path string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, entries[k])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	return nil
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// validateName enforces the provider's resource naming shape: lowercase,
// digits, and hyphens, not at the edges.
func validateName(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		for _, c := range s {
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
				return fmt.Errorf("%s can only contain lowercase letters, numbers, and hyphens", label)
			}
		}
		if s[0] == '-' || s[len(s)-1] == '-' {
			return fmt.Errorf("%s cannot start or end with a hyphen", label)
		}
		return nil
	}
}
