package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarsLyceum/gcp-microservice-management/internal/config"
	"github.com/MarsLyceum/gcp-microservice-management/internal/platform/gcloud"
	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
	"github.com/MarsLyceum/gcp-microservice-management/internal/ui"
	"github.com/MarsLyceum/gcp-microservice-management/internal/util/wait"
)

func testContext(t *testing.T, cloud gcloud.Manager) *Context {
	t.Helper()
	return &Context{
		Context: context.Background(),
		Config: &config.Config{
			ProjectID:   "proj",
			Region:      "us-east1",
			Registry:    config.DefaultRegistry,
			ServiceName: "svc1",
			APIID:       "orders-api",
			APIConfigID: "orders-config",
			GatewayName: "orders-gw",
		},
		Cloud:    cloud,
		Notifier: ui.Noop{},
		Timeouts: config.TestTimeouts(),
	}
}

func testDescriptor(t *testing.T) resource.Descriptor {
	t.Helper()
	desc, err := resource.NewServiceDescriptor("proj", "us-east1", "svc1")
	require.NoError(t, err)
	return desc
}

func TestEnsure_AbsentSkipsDelete(t *testing.T) {
	t.Parallel()

	gets, deletes, creates := 0, 0, 0
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			gets++
			return "", false, nil
		},
		Delete: func(_ context.Context) error {
			deletes++
			return nil
		},
		Create: func(_ context.Context) error {
			creates++
			return nil
		},
	}

	err := op.Execute(testContext(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, gets)
	assert.Equal(t, 0, deletes, "no delete when the resource is absent")
	assert.Equal(t, 1, creates)
}

func TestEnsure_ExistingIsDeletedAndConfirmedGone(t *testing.T) {
	t.Parallel()

	gets, deletes, creates := 0, 0, 0
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			gets++
			// Initial lookup finds it; two more polls still see it;
			// the fourth confirms removal.
			return "res", gets < 4, nil
		},
		Delete: func(_ context.Context) error {
			deletes++
			return nil
		},
		Create: func(_ context.Context) error {
			creates++
			return nil
		},
	}

	err := op.Execute(testContext(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, deletes, "exactly one delete call")
	assert.Equal(t, 1, creates, "exactly one create call")
	assert.Equal(t, 4, gets)
}

func TestEnsure_WaitActivePollsUntilVisible(t *testing.T) {
	t.Parallel()

	gets, creates := 0, 0
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			gets++
			// Not found before creation; visible on the third
			// post-create poll.
			return "res", creates > 0 && gets >= 4, nil
		},
		Delete:     func(_ context.Context) error { return nil },
		Create:     func(_ context.Context) error { creates++; return nil },
		WaitActive: true,
	}

	err := op.Execute(testContext(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, creates)
	assert.Equal(t, 4, gets)
}

func TestEnsure_LookupErrorIsFatal(t *testing.T) {
	t.Parallel()

	boom := errors.New("transport down")
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			return "", false, boom
		},
		Delete: func(_ context.Context) error { return nil },
		Create: func(_ context.Context) error {
			t.Fatal("Create must not be called after a lookup error")
			return nil
		},
	}

	err := op.Execute(testContext(t, nil))
	assert.ErrorIs(t, err, boom)
}

func TestEnsure_DeletePollErrorIsFatal(t *testing.T) {
	t.Parallel()

	boom := errors.New("transport down")
	gets := 0
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			gets++
			if gets == 1 {
				return "res", true, nil
			}
			return "", false, boom
		},
		Delete: func(_ context.Context) error { return nil },
		Create: func(_ context.Context) error {
			t.Fatal("Create must not be called after a poll error")
			return nil
		},
	}

	err := op.Execute(testContext(t, nil))
	assert.ErrorIs(t, err, boom)
}

func TestEnsure_CreateErrorIsFatalWithoutDeadline(t *testing.T) {
	t.Parallel()

	boom := errors.New("invalid spec")
	creates := 0
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			return "", false, nil
		},
		Delete: func(_ context.Context) error { return nil },
		Create: func(_ context.Context) error {
			creates++
			return boom
		},
	}

	err := op.Execute(testContext(t, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, creates, "no retries without a create deadline")
}

func TestEnsure_CreateRetriedUntilSuccessWithinDeadline(t *testing.T) {
	t.Parallel()

	creates := 0
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			return "", false, nil
		},
		Delete: func(_ context.Context) error { return nil },
		Create: func(_ context.Context) error {
			creates++
			if creates < 3 {
				return errors.New("dependent objects still settling")
			}
			return nil
		},
		CreateDeadline: time.Second,
	}

	err := op.Execute(testContext(t, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, creates, "two transient failures then success")
}

func TestEnsure_CreateDeadlineExceeded(t *testing.T) {
	t.Parallel()

	creates := 0
	var lastAttempt time.Time
	op := &EnsureOperation[string]{
		Descriptor: testDescriptor(t),
		Get: func(_ context.Context) (string, bool, error) {
			return "", false, nil
		},
		Delete: func(_ context.Context) error { return nil },
		Create: func(_ context.Context) error {
			creates++
			lastAttempt = time.Now()
			return errors.New("still failing")
		},
		CreateDeadline: 20 * time.Millisecond,
	}

	// Small slack for the initial lookup before the retry clock starts.
	cutoff := time.Now().Add(25 * time.Millisecond)
	err := op.Execute(testContext(t, nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, wait.ErrDeadlineExceeded)
	assert.ErrorContains(t, err, "creation did not converge")
	assert.Positive(t, creates)
	assert.False(t, lastAttempt.After(cutoff), "no create attempts after the deadline")
}
