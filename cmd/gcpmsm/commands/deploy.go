package commands

import (
	"github.com/spf13/cobra"

	"github.com/MarsLyceum/gcp-microservice-management/cmd/gcpmsm/handlers"
)

// Deploy returns the command that runs a full deployment.
//
// Settings left unset as flags fall back to environment variables loaded
// from the discovered .env file (GOOGLE_CLOUD_PROJECT, GCPMSM_REGION,
// GCPMSM_SERVICE, GCPMSM_API, GCPMSM_API_CONFIG, GCPMSM_GATEWAY,
// GCPMSM_OPENAPI_SPEC, GCPMSM_CLOUDSQL_INSTANCE).
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the service and its API gateway",
		Long: `Deploy a microservice to Cloud Run and publish it through API Gateway.

Each managed resource is fully replaced: an existing resource of the same
name is deleted, its removal confirmed, and a fresh one created. The service
pipeline and the gateway chain run independently; within the gateway chain
the API, its config, and the gateway are created strictly in order.

There is no rollback: a deployment that fails mid-chain leaves the resources
it already recreated in place.

A .env file is discovered by walking parent directories from the current
working directory; variables prefixed with DATABASE_ are forwarded to the
deployed container.

Examples:
  # Deploy service and gateway, settings from .env
  gcpmsm deploy

  # Deploy only the Cloud Run service
  gcpmsm deploy --service orders --project my-project --region us-east1

  # Attach a Cloud SQL instance
  gcpmsm deploy --service orders --cloud-sql-instance my-project:us-east1:db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "Google Cloud project id")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Region for the service and gateway")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Container registry hostname (default: gcr.io)")
	cmd.Flags().StringVar(&opts.ServiceName, "service", "", "Cloud Run service name")
	cmd.Flags().StringVar(&opts.APIID, "api", "", "Gateway API id")
	cmd.Flags().StringVar(&opts.APIConfigID, "api-config", "", "Gateway API config id")
	cmd.Flags().StringVar(&opts.GatewayName, "gateway", "", "Gateway name")
	cmd.Flags().StringVar(&opts.OpenAPISpecPath, "openapi-spec", "", "Path to the OpenAPI document")
	cmd.Flags().StringVar(&opts.CloudSQLInstance, "cloud-sql-instance", "", "Cloud SQL connection name to attach (optional)")
	cmd.Flags().StringVar(&opts.EnvPrefix, "env-prefix", "", "Prefix selecting container env vars from .env (default: DATABASE_)")
	cmd.Flags().StringVar(&opts.KeyDir, "key-dir", ".", "Directory searched for a service account key file")
	cmd.Flags().StringVar(&opts.KeyGlob, "key-glob", "*-key.json", "Glob matching the service account key file")

	return cmd
}
