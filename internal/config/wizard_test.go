package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_EnvEntries_FullChain(t *testing.T) {
	t.Parallel()

	r := &WizardResult{
		ProjectID:        "proj",
		Region:           "us-east1",
		ServiceName:      "orders",
		APIID:            "orders-api",
		APIConfigID:      "orders-config",
		GatewayName:      "orders-gw",
		OpenAPISpecPath:  "openapi.yaml",
		CloudSQLInstance: "proj:us-east1:db",
	}

	entries := r.EnvEntries()
	assert.Equal(t, "proj", entries["GOOGLE_CLOUD_PROJECT"])
	assert.Equal(t, "orders-api", entries["GCPMSM_API"])
	assert.Equal(t, "proj:us-east1:db", entries["GCPMSM_CLOUDSQL_INSTANCE"])
}

func TestWizardResult_EnvEntries_ServiceOnly(t *testing.T) {
	t.Parallel()

	r := &WizardResult{ProjectID: "proj", Region: "us-east1", ServiceName: "orders"}

	entries := r.EnvEntries()
	assert.NotContains(t, entries, "GCPMSM_API")
	assert.NotContains(t, entries, "GCPMSM_GATEWAY")
	assert.NotContains(t, entries, "GCPMSM_CLOUDSQL_INSTANCE")
}

func TestWriteEnvFile_SortedAndParseable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	err := WriteEnvFile(map[string]string{
		"GCPMSM_REGION":        "us-east1",
		"GOOGLE_CLOUD_PROJECT": "proj",
		"GCPMSM_SERVICE":       "orders",
	}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GCPMSM_REGION=us-east1\nGCPMSM_SERVICE=orders\nGOOGLE_CLOUD_PROJECT=proj\n", string(data))
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	check := validateName("service name")
	assert.NoError(t, check("orders-v2"))
	assert.Error(t, check(""))
	assert.Error(t, check("Orders"))
	assert.Error(t, check("-orders"))
	assert.Error(t, check("orders-"))
}
