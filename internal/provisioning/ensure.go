package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
	"github.com/MarsLyceum/gcp-microservice-management/internal/util/wait"
)

// EnsureOperation converges a single remote resource to its descriptor by
// full replacement: an existing resource of the same name is deleted and its
// removal confirmed before the new one is created.
//
// Usage example:
//
//	op := &EnsureOperation[*runpb.Service]{
//	    Descriptor: desc,
//	    Get:        func(c context.Context) (*runpb.Service, bool, error) { return cloud.GetService(c, desc.Name) },
//	    Delete:     func(c context.Context) error { return cloud.DeleteService(c, desc.Name) },
//	    Create:     func(c context.Context) error { return cloud.CreateService(c, desc.Parent, desc.ID, spec) },
//	    WaitActive: true,
//	}
//	err := op.Execute(ctx)
type EnsureOperation[T any] struct {
	Descriptor resource.Descriptor

	// Get looks up the resource by its fully qualified name.
	Get func(ctx context.Context) (T, bool, error)

	// Delete removes the resource. Removal is confirmed by polling Get.
	Delete func(ctx context.Context) error

	// Create creates the resource from its desired spec.
	Create func(ctx context.Context) error

	// WaitActive polls Get after creation until the resource is visible.
	// There is no deadline; the resource appears or the run is cancelled.
	WaitActive bool

	// CreateDeadline, when positive, retries Create itself on any error
	// until the deadline. Used for API configs, whose creation fails
	// transiently while dependent objects settle.
	CreateDeadline time.Duration
}

// Execute runs the replace-and-confirm sequence. Lookup errors are fatal;
// not-found is a state transition, never a failure.
func (op *EnsureOperation[T]) Execute(ctx *Context) error {
	kind := op.Descriptor.Kind
	id := op.Descriptor.ID
	interval := ctx.Timeouts.PollInterval

	_, found, err := op.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up %s %s: %w", kind, id, err)
	}

	if found {
		ctx.Notifier.Warnf("%s %s already exists, deleting it first", kind, id)
		if err := op.Delete(ctx); err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
		}
		err := wait.Until(ctx, func(c context.Context) (bool, error) {
			_, stillThere, err := op.Get(c)
			if err != nil {
				return false, err
			}
			if stillThere {
				ctx.Notifier.Warnf("waiting for %s %s to be deleted", kind, id)
			}
			return !stillThere, nil
		}, wait.WithInterval(interval))
		if err != nil {
			return fmt.Errorf("failed waiting for %s %s deletion: %w", kind, id, err)
		}
		ctx.Notifier.Successf("%s %s deleted", kind, id)
	} else {
		ctx.Notifier.Infof("%s %s does not exist, creating it", kind, id)
	}

	if err := op.create(ctx); err != nil {
		return err
	}

	if op.WaitActive {
		err := wait.Until(ctx, func(c context.Context) (bool, error) {
			_, active, err := op.Get(c)
			if err != nil {
				return false, err
			}
			if !active {
				ctx.Notifier.Warnf("waiting for %s %s to become active", kind, id)
			}
			return active, nil
		}, wait.WithInterval(interval))
		if err != nil {
			return fmt.Errorf("failed waiting for %s %s to become active: %w", kind, id, err)
		}
	}

	ctx.Notifier.Successf("%s %s is now active", kind, id)
	return nil
}

// create issues the create call, retrying it until CreateDeadline when one is
// configured. All errors are retried on that path; API config creation fails
// transiently for reasons the provider does not distinguish.
func (op *EnsureOperation[T]) create(ctx *Context) error {
	kind := op.Descriptor.Kind
	id := op.Descriptor.ID

	if op.CreateDeadline <= 0 {
		if err := op.Create(ctx); err != nil {
			return fmt.Errorf("failed to create %s %s: %w", kind, id, err)
		}
		return nil
	}

	interval := ctx.Timeouts.PollInterval
	err := wait.Until(ctx, func(c context.Context) (bool, error) {
		if err := op.Create(c); err != nil {
			ctx.Notifier.Warnf("error creating %s %s: %v, retrying in %v", kind, id, err, interval)
			return false, err
		}
		return true, nil
	},
		wait.WithInterval(interval),
		wait.WithDeadline(op.CreateDeadline),
		wait.WithRetryAllErrors())
	if err != nil {
		return fmt.Errorf("%s %s creation did not converge: %w", kind, id, err)
	}
	return nil
}
