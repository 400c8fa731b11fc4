// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MarsLyceum/gcp-microservice-management/internal/config"
	"github.com/MarsLyceum/gcp-microservice-management/internal/platform/gcloud"
	"github.com/MarsLyceum/gcp-microservice-management/internal/provisioning"
	"github.com/MarsLyceum/gcp-microservice-management/internal/ui"
)

// DeployOptions carries the flag values for the deploy command. Empty fields
// fall back to the matching environment variables after the .env file loads.
type DeployOptions struct {
	ProjectID        string
	Region           string
	Registry         string
	ServiceName      string
	APIID            string
	APIConfigID      string
	GatewayName      string
	OpenAPISpecPath  string
	CloudSQLInstance string
	EnvPrefix        string
	KeyDir           string
	KeyGlob          string
}

// cloudManager is the client surface Deploy needs, including teardown.
type cloudManager interface {
	gcloud.Manager
	Close() error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newCloudManager creates the GCP API client.
	newCloudManager = func(ctx context.Context, credentialsFile string) (cloudManager, error) {
		return gcloud.NewRealClient(ctx, credentialsFile)
	}

	// newNotifier creates the progress reporter.
	newNotifier = func() ui.Notifier {
		return ui.NewConsole()
	}

	// findEnvFile locates the .env file by walking parent directories.
	findEnvFile = config.FindEnvFile

	// loadEnvVars loads the .env file and collects prefixed variables.
	loadEnvVars = config.LoadEnvVars

	// findKeyFile locates the service account key file.
	findKeyFile = config.FindKeyFile
)

// Deploy provisions a Cloud Run service and its API Gateway front end.
//
// The workflow mirrors what the command help promises:
//  1. Discovers the nearest .env file and loads it into the environment
//  2. Fills unset options from environment variables
//  3. Resolves service account credentials (env var, then key file glob)
//  4. Replaces the Cloud Run service and waits for it to become active
//  5. Replaces the API, API config, and gateway in dependency order
//
// Existing resources are deleted and recreated rather than updated, so a
// failed run can simply be retried.
func Deploy(ctx context.Context, opts DeployOptions) error {
	notifier := newNotifier()

	envPath, err := findEnvFile()
	if err != nil {
		if errors.Is(err, config.ErrEnvFileNotFound) {
			notifier.Failf("No .env file found in this directory or any parent")
		}
		return err
	}
	notifier.Infof("Using env file %s", envPath)

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = config.DefaultEnvPrefix
	}
	envVars, err := loadEnvVars(envPath, prefix)
	if err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}

	applyEnvDefaults(&opts)

	credentialsFile, err := resolveCredentials(opts, notifier)
	if err != nil {
		return err
	}

	cfg := config.Config{
		ProjectID:        opts.ProjectID,
		Region:           opts.Region,
		Registry:         opts.Registry,
		ServiceName:      opts.ServiceName,
		EnvVars:          envVars,
		CloudSQLInstance: opts.CloudSQLInstance,
		APIID:            opts.APIID,
		APIConfigID:      opts.APIConfigID,
		GatewayName:      opts.GatewayName,
		OpenAPISpecPath:  opts.OpenAPISpecPath,
		CredentialsFile:  credentialsFile,
	}
	if cfg.Registry == "" {
		cfg.Registry = config.DefaultRegistry
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	phases, err := selectPhases(cfg)
	if err != nil {
		return err
	}

	cloud, err := newCloudManager(ctx, credentialsFile)
	if err != nil {
		return fmt.Errorf("creating GCP client: %w", err)
	}
	defer cloud.Close()

	pctx := provisioning.NewContext(ctx, &cfg, cloud, notifier)
	return provisioning.RunPhases(pctx, phases)
}

// applyEnvDefaults fills unset options from the environment. Runs after the
// .env file has been loaded so file values are visible here.
func applyEnvDefaults(opts *DeployOptions) {
	fallback(&opts.ProjectID, "GOOGLE_CLOUD_PROJECT")
	fallback(&opts.Region, "GCPMSM_REGION")
	fallback(&opts.ServiceName, "GCPMSM_SERVICE")
	fallback(&opts.APIID, "GCPMSM_API")
	fallback(&opts.APIConfigID, "GCPMSM_API_CONFIG")
	fallback(&opts.GatewayName, "GCPMSM_GATEWAY")
	fallback(&opts.OpenAPISpecPath, "GCPMSM_OPENAPI_SPEC")
	fallback(&opts.CloudSQLInstance, "GCPMSM_CLOUDSQL_INSTANCE")
}

func fallback(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// resolveCredentials picks the service account key file. An explicit
// GOOGLE_APPLICATION_CREDENTIALS wins; otherwise the key directory is
// searched, and finding nothing is fatal.
func resolveCredentials(opts DeployOptions, notifier ui.Notifier) (string, error) {
	if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		return path, nil
	}

	path, err := findKeyFile(opts.KeyDir, opts.KeyGlob)
	if err != nil {
		if errors.Is(err, config.ErrKeyFileNotFound) {
			notifier.Failf("No service account key matching %s and GOOGLE_APPLICATION_CREDENTIALS is not set",
				filepath.Join(opts.KeyDir, opts.KeyGlob))
		}
		return "", err
	}
	notifier.Infof("Using service account key %s", path)
	return path, nil
}

// selectPhases decides which resources to provision from the config. The
// service and the gateway chain can each be deployed on their own.
func selectPhases(cfg config.Config) ([]provisioning.Phase, error) {
	var phases []provisioning.Phase
	if cfg.ServiceName != "" {
		phases = append(phases, provisioning.NewServicePhase())
	}
	if cfg.APIID != "" || cfg.GatewayName != "" {
		phases = append(phases, provisioning.NewGatewayPhase())
	}
	if len(phases) == 0 {
		return nil, errors.New("nothing to deploy: set a service name or an API id")
	}
	return phases, nil
}
