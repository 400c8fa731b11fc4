package provisioning

import (
	"context"

	"cloud.google.com/go/apigateway/apiv1/apigatewaypb"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

// GatewayPhase publishes the service through API Gateway. The three resources
// form a dependency chain and are converged strictly in order:
// API, then API config, then the gateway endpoint.
type GatewayPhase struct{}

// NewGatewayPhase creates the gateway deployment phase.
func NewGatewayPhase() *GatewayPhase {
	return &GatewayPhase{}
}

// Name implements the Phase interface.
func (p *GatewayPhase) Name() string {
	return "api gateway"
}

// Provision implements the Phase interface. A fatal error at any stage aborts
// the remaining chain.
func (p *GatewayPhase) Provision(ctx *Context) error {
	if err := p.ensureAPI(ctx); err != nil {
		return err
	}
	if err := p.ensureAPIConfig(ctx); err != nil {
		return err
	}
	return p.ensureGateway(ctx)
}

func (p *GatewayPhase) ensureAPI(ctx *Context) error {
	cfg := ctx.Config

	desc, err := resource.NewAPIDescriptor(cfg.ProjectID, cfg.APIID)
	if err != nil {
		return err
	}

	op := &EnsureOperation[*apigatewaypb.Api]{
		Descriptor: desc,
		Get: func(c context.Context) (*apigatewaypb.Api, bool, error) {
			return ctx.Cloud.GetAPI(c, desc.Name)
		},
		Delete: func(c context.Context) error {
			return ctx.Cloud.DeleteAPI(c, desc.Name)
		},
		Create: func(c context.Context) error {
			return ctx.Cloud.CreateAPI(c, desc.Parent, desc.ID, desc.ID)
		},
		WaitActive: true,
	}
	return op.Execute(ctx)
}

func (p *GatewayPhase) ensureAPIConfig(ctx *Context) error {
	cfg := ctx.Config

	desc, err := resource.NewAPIConfigDescriptor(cfg.ProjectID, cfg.APIID, cfg.APIConfigID)
	if err != nil {
		return err
	}
	doc, err := resource.LoadOpenAPIDocument(cfg.OpenAPISpecPath)
	if err != nil {
		return err
	}

	// Config creation commonly fails while the freshly created API settles,
	// so the create call itself is retried until the deadline.
	op := &EnsureOperation[*apigatewaypb.ApiConfig]{
		Descriptor: desc,
		Get: func(c context.Context) (*apigatewaypb.ApiConfig, bool, error) {
			return ctx.Cloud.GetAPIConfig(c, desc.Name)
		},
		Delete: func(c context.Context) error {
			return ctx.Cloud.DeleteAPIConfig(c, desc.Name)
		},
		Create: func(c context.Context) error {
			return ctx.Cloud.CreateAPIConfig(c, desc.Parent, desc.ID, doc)
		},
		CreateDeadline: ctx.Timeouts.ConfigCreate,
	}
	return op.Execute(ctx)
}

func (p *GatewayPhase) ensureGateway(ctx *Context) error {
	cfg := ctx.Config

	desc, err := resource.NewGatewayDescriptor(cfg.ProjectID, cfg.Region, cfg.GatewayName)
	if err != nil {
		return err
	}
	configDesc, err := resource.NewAPIConfigDescriptor(cfg.ProjectID, cfg.APIID, cfg.APIConfigID)
	if err != nil {
		return err
	}

	op := &EnsureOperation[*apigatewaypb.Gateway]{
		Descriptor: desc,
		Get: func(c context.Context) (*apigatewaypb.Gateway, bool, error) {
			return ctx.Cloud.GetGateway(c, desc.Name)
		},
		Delete: func(c context.Context) error {
			return ctx.Cloud.DeleteGateway(c, desc.Name)
		},
		Create: func(c context.Context) error {
			return ctx.Cloud.CreateGateway(c, desc.Parent, desc.ID, configDesc.Name)
		},
	}
	return op.Execute(ctx)
}
