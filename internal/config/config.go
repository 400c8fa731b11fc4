// Package config loads deployment settings from the environment: a dotenv
// file discovered by walking parent directories, a service-account key file
// discovered by glob, and timeout knobs overridable via environment variables.
package config

import (
	"fmt"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

// DefaultRegistry is the container registry used when none is configured.
const DefaultRegistry = "gcr.io"

// DefaultEnvPrefix selects which dotenv variables are forwarded to the
// deployed container.
const DefaultEnvPrefix = "DATABASE_"

// Config holds everything one deployment run needs. It is constructed fresh
// per invocation; nothing is persisted across runs.
type Config struct {
	ProjectID string
	Region    string
	Registry  string

	// Service pipeline
	ServiceName      string
	EnvVars          map[string]string
	CloudSQLInstance string // optional; empty means no Cloud SQL attachment

	// Gateway chain
	APIID           string
	APIConfigID     string
	GatewayName     string
	OpenAPISpecPath string

	// CredentialsFile is the service-account key used to dial the provider.
	// Empty means ambient credentials.
	CredentialsFile string
}

// Validate checks the fields every pipeline needs. Per-resource names are
// validated by the descriptor builders when the pipelines are assembled.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project id must not be empty")
	}
	if c.Region == "" {
		return fmt.Errorf("region must not be empty")
	}
	if c.Registry == "" {
		return fmt.Errorf("registry must not be empty")
	}
	if err := resource.ValidateEnvVars(c.EnvVars); err != nil {
		return fmt.Errorf("invalid env vars: %w", err)
	}
	return nil
}
