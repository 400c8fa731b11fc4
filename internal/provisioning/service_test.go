package provisioning

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/run/apiv2/runpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarsLyceum/gcp-microservice-management/internal/platform/gcloud"
	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

func TestServicePhase_ReplacesExistingService(t *testing.T) {
	t.Parallel()

	cloud := &gcloud.MockManager{}
	cloud.GetServiceFunc = func(_ context.Context, name string) (*runpb.Service, bool, error) {
		assert.Equal(t, "projects/proj/locations/us-east1/services/svc1", name)
		switch cloud.Calls.GetService {
		case 1:
			// Found on the first lookup, so it gets replaced.
			return &runpb.Service{}, true, nil
		case 2, 3:
			// Still visible while deletion runs.
			return &runpb.Service{}, true, nil
		case 4:
			// Deletion confirmed on the third poll.
			return nil, false, nil
		default:
			// Created and active.
			return &runpb.Service{}, true, nil
		}
	}

	err := NewServicePhase().Provision(testContext(t, cloud))
	require.NoError(t, err)

	assert.Equal(t, 1, cloud.Calls.DeleteService)
	assert.Equal(t, 1, cloud.Calls.CreateService)
	assert.Equal(t, 5, cloud.Calls.GetService)
	assert.Equal(t, 1, cloud.Calls.AllowUnauthenticated, "policy binding issued exactly once")
}

func TestServicePhase_FreshServiceSkipsDelete(t *testing.T) {
	t.Parallel()

	cloud := &gcloud.MockManager{}
	cloud.GetServiceFunc = func(_ context.Context, _ string) (*runpb.Service, bool, error) {
		// Absent until created.
		return &runpb.Service{}, cloud.Calls.CreateService > 0, nil
	}

	err := NewServicePhase().Provision(testContext(t, cloud))
	require.NoError(t, err)

	assert.Equal(t, 0, cloud.Calls.DeleteService)
	assert.Equal(t, 1, cloud.Calls.CreateService)
	assert.Equal(t, 1, cloud.Calls.AllowUnauthenticated)
}

func TestServicePhase_PassesSpecWithCloudSQL(t *testing.T) {
	t.Parallel()

	var gotSpec resource.ServiceSpec
	cloud := &gcloud.MockManager{
		CreateServiceFunc: func(_ context.Context, parent, serviceID string, spec resource.ServiceSpec) error {
			assert.Equal(t, "projects/proj/locations/us-east1", parent)
			assert.Equal(t, "svc1", serviceID)
			gotSpec = spec
			return nil
		},
	}
	cloud.GetServiceFunc = func(_ context.Context, _ string) (*runpb.Service, bool, error) {
		return &runpb.Service{}, cloud.Calls.CreateService > 0, nil
	}

	ctx := testContext(t, cloud)
	ctx.Config.CloudSQLInstance = "proj:us-east1:db"
	ctx.Config.EnvVars = map[string]string{"DATABASE_HOST": "db"}

	require.NoError(t, NewServicePhase().Provision(ctx))

	require.Len(t, gotSpec.Volumes, 1)
	assert.Equal(t, []string{"proj:us-east1:db"}, gotSpec.Volumes[0].CloudSQLInstances)
	assert.Equal(t, "db", gotSpec.EnvVars["DATABASE_HOST"])
}

func TestServicePhase_PolicyBindingFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	cloud := &gcloud.MockManager{
		AllowUnauthenticatedFunc: func(_ context.Context, _ string) error {
			return errors.New("iam denied")
		},
	}
	cloud.GetServiceFunc = func(_ context.Context, _ string) (*runpb.Service, bool, error) {
		return &runpb.Service{}, cloud.Calls.CreateService > 0, nil
	}

	err := NewServicePhase().Provision(testContext(t, cloud))

	assert.NoError(t, err, "policy binding is best effort")
	assert.Equal(t, 1, cloud.Calls.AllowUnauthenticated)
}

func TestServicePhase_CreateFailureIsFatal(t *testing.T) {
	t.Parallel()

	boom := errors.New("quota exceeded")
	cloud := &gcloud.MockManager{
		CreateServiceFunc: func(_ context.Context, _, _ string, _ resource.ServiceSpec) error {
			return boom
		},
	}

	err := NewServicePhase().Provision(testContext(t, cloud))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cloud.Calls.AllowUnauthenticated, "no policy binding for a failed deployment")
}

func TestServicePhase_InvalidConfigRejectedBeforeRemoteCalls(t *testing.T) {
	t.Parallel()

	cloud := &gcloud.MockManager{}
	ctx := testContext(t, cloud)
	ctx.Config.ServiceName = ""

	err := NewServicePhase().Provision(ctx)

	assert.Error(t, err)
	assert.Equal(t, 0, cloud.Calls.GetService)
}
