package provisioning

import (
	"context"

	"cloud.google.com/go/run/apiv2/runpb"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

// ServicePhase deploys the Cloud Run service and opens it to unauthenticated
// callers. It is independent of the gateway chain.
type ServicePhase struct{}

// NewServicePhase creates the service deployment phase.
func NewServicePhase() *ServicePhase {
	return &ServicePhase{}
}

// Name implements the Phase interface.
func (p *ServicePhase) Name() string {
	return "cloud run service"
}

// Provision implements the Phase interface. The service is fully replaced,
// polled until active, and then granted the public invoker binding. The
// binding is best effort: a failure there is warned about but does not fail
// the deployment.
func (p *ServicePhase) Provision(ctx *Context) error {
	cfg := ctx.Config

	desc, err := resource.NewServiceDescriptor(cfg.ProjectID, cfg.Region, cfg.ServiceName)
	if err != nil {
		return err
	}
	spec, err := resource.NewServiceSpec(cfg.Registry, cfg.ProjectID, cfg.ServiceName, cfg.EnvVars, cfg.CloudSQLInstance)
	if err != nil {
		return err
	}

	ctx.Notifier.Infof("deploying %s to Cloud Run", cfg.ServiceName)

	op := &EnsureOperation[*runpb.Service]{
		Descriptor: desc,
		Get: func(c context.Context) (*runpb.Service, bool, error) {
			return ctx.Cloud.GetService(c, desc.Name)
		},
		Delete: func(c context.Context) error {
			return ctx.Cloud.DeleteService(c, desc.Name)
		},
		Create: func(c context.Context) error {
			return ctx.Cloud.CreateService(c, desc.Parent, desc.ID, spec)
		},
		WaitActive: true,
	}
	if err := op.Execute(ctx); err != nil {
		return err
	}

	ctx.Notifier.Infof("allowing unauthenticated access to %s", cfg.ServiceName)
	if err := ctx.Cloud.AllowUnauthenticated(ctx, desc.Name); err != nil {
		ctx.Notifier.Warnf("could not allow unauthenticated access to %s: %v", cfg.ServiceName, err)
		return nil
	}
	ctx.Notifier.Successf("service %s now allows unauthenticated calls", cfg.ServiceName)
	return nil
}
