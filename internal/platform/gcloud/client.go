// Package gcloud wraps the Google Cloud APIs the deployment converges against.
package gcloud

import (
	"context"

	"cloud.google.com/go/apigateway/apiv1/apigatewaypb"
	"cloud.google.com/go/run/apiv2/runpb"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

// ServiceManager defines the operations for managing Cloud Run services.
// Lookups return found=false when the resource does not exist; err is
// reserved for transport and provider failures.
type ServiceManager interface {
	GetService(ctx context.Context, name string) (*runpb.Service, bool, error)
	DeleteService(ctx context.Context, name string) error
	CreateService(ctx context.Context, parent, serviceID string, spec resource.ServiceSpec) error

	// AllowUnauthenticated grants the public invoker role on the service.
	AllowUnauthenticated(ctx context.Context, name string) error
}

// GatewayManager defines the operations for managing API Gateway resources:
// the API, its config, and the gateway endpoint.
type GatewayManager interface {
	GetAPI(ctx context.Context, name string) (*apigatewaypb.Api, bool, error)
	DeleteAPI(ctx context.Context, name string) error
	CreateAPI(ctx context.Context, parent, apiID, displayName string) error

	GetAPIConfig(ctx context.Context, name string) (*apigatewaypb.ApiConfig, bool, error)
	DeleteAPIConfig(ctx context.Context, name string) error
	CreateAPIConfig(ctx context.Context, parent, configID string, doc resource.OpenAPIDocument) error

	GetGateway(ctx context.Context, name string) (*apigatewaypb.Gateway, bool, error)
	DeleteGateway(ctx context.Context, name string) error
	CreateGateway(ctx context.Context, parent, gatewayID, apiConfigName string) error
}

// Manager combines all provider interfaces.
type Manager interface {
	ServiceManager
	GatewayManager
}
