package gcloud

import (
	"context"

	"cloud.google.com/go/apigateway/apiv1/apigatewaypb"
	"cloud.google.com/go/run/apiv2/runpb"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

// MockManager is a configurable Manager for tests. Each method delegates to
// its corresponding Func field when set and otherwise returns a benign
// default (lookups report not-found, mutations succeed). Every call is
// counted in Calls.
type MockManager struct {
	GetServiceFunc           func(ctx context.Context, name string) (*runpb.Service, bool, error)
	DeleteServiceFunc        func(ctx context.Context, name string) error
	CreateServiceFunc        func(ctx context.Context, parent, serviceID string, spec resource.ServiceSpec) error
	AllowUnauthenticatedFunc func(ctx context.Context, name string) error

	GetAPIFunc    func(ctx context.Context, name string) (*apigatewaypb.Api, bool, error)
	DeleteAPIFunc func(ctx context.Context, name string) error
	CreateAPIFunc func(ctx context.Context, parent, apiID, displayName string) error

	GetAPIConfigFunc    func(ctx context.Context, name string) (*apigatewaypb.ApiConfig, bool, error)
	DeleteAPIConfigFunc func(ctx context.Context, name string) error
	CreateAPIConfigFunc func(ctx context.Context, parent, configID string, doc resource.OpenAPIDocument) error

	GetGatewayFunc    func(ctx context.Context, name string) (*apigatewaypb.Gateway, bool, error)
	DeleteGatewayFunc func(ctx context.Context, name string) error
	CreateGatewayFunc func(ctx context.Context, parent, gatewayID, apiConfigName string) error

	Calls CallCounts
}

// CallCounts records how many times each Manager method was invoked.
type CallCounts struct {
	GetService           int
	DeleteService        int
	CreateService        int
	AllowUnauthenticated int

	GetAPI    int
	DeleteAPI int
	CreateAPI int

	GetAPIConfig    int
	DeleteAPIConfig int
	CreateAPIConfig int

	GetGateway    int
	DeleteGateway int
	CreateGateway int
}

// GetService implements ServiceManager.
func (m *MockManager) GetService(ctx context.Context, name string) (*runpb.Service, bool, error) {
	m.Calls.GetService++
	if m.GetServiceFunc != nil {
		return m.GetServiceFunc(ctx, name)
	}
	return nil, false, nil
}

// DeleteService implements ServiceManager.
func (m *MockManager) DeleteService(ctx context.Context, name string) error {
	m.Calls.DeleteService++
	if m.DeleteServiceFunc != nil {
		return m.DeleteServiceFunc(ctx, name)
	}
	return nil
}

// CreateService implements ServiceManager.
func (m *MockManager) CreateService(ctx context.Context, parent, serviceID string, spec resource.ServiceSpec) error {
	m.Calls.CreateService++
	if m.CreateServiceFunc != nil {
		return m.CreateServiceFunc(ctx, parent, serviceID, spec)
	}
	return nil
}

// AllowUnauthenticated implements ServiceManager.
func (m *MockManager) AllowUnauthenticated(ctx context.Context, name string) error {
	m.Calls.AllowUnauthenticated++
	if m.AllowUnauthenticatedFunc != nil {
		return m.AllowUnauthenticatedFunc(ctx, name)
	}
	return nil
}

// GetAPI implements GatewayManager.
func (m *MockManager) GetAPI(ctx context.Context, name string) (*apigatewaypb.Api, bool, error) {
	m.Calls.GetAPI++
	if m.GetAPIFunc != nil {
		return m.GetAPIFunc(ctx, name)
	}
	return nil, false, nil
}

// DeleteAPI implements GatewayManager.
func (m *MockManager) DeleteAPI(ctx context.Context, name string) error {
	m.Calls.DeleteAPI++
	if m.DeleteAPIFunc != nil {
		return m.DeleteAPIFunc(ctx, name)
	}
	return nil
}

// CreateAPI implements GatewayManager.
func (m *MockManager) CreateAPI(ctx context.Context, parent, apiID, displayName string) error {
	m.Calls.CreateAPI++
	if m.CreateAPIFunc != nil {
		return m.CreateAPIFunc(ctx, parent, apiID, displayName)
	}
	return nil
}

// GetAPIConfig implements GatewayManager.
func (m *MockManager) GetAPIConfig(ctx context.Context, name string) (*apigatewaypb.ApiConfig, bool, error) {
	m.Calls.GetAPIConfig++
	if m.GetAPIConfigFunc != nil {
		return m.GetAPIConfigFunc(ctx, name)
	}
	return nil, false, nil
}

// DeleteAPIConfig implements GatewayManager.
func (m *MockManager) DeleteAPIConfig(ctx context.Context, name string) error {
	m.Calls.DeleteAPIConfig++
	if m.DeleteAPIConfigFunc != nil {
		return m.DeleteAPIConfigFunc(ctx, name)
	}
	return nil
}

// CreateAPIConfig implements GatewayManager.
func (m *MockManager) CreateAPIConfig(ctx context.Context, parent, configID string, doc resource.OpenAPIDocument) error {
	m.Calls.CreateAPIConfig++
	if m.CreateAPIConfigFunc != nil {
		return m.CreateAPIConfigFunc(ctx, parent, configID, doc)
	}
	return nil
}

// GetGateway implements GatewayManager.
func (m *MockManager) GetGateway(ctx context.Context, name string) (*apigatewaypb.Gateway, bool, error) {
	m.Calls.GetGateway++
	if m.GetGatewayFunc != nil {
		return m.GetGatewayFunc(ctx, name)
	}
	return nil, false, nil
}

// DeleteGateway implements GatewayManager.
func (m *MockManager) DeleteGateway(ctx context.Context, name string) error {
	m.Calls.DeleteGateway++
	if m.DeleteGatewayFunc != nil {
		return m.DeleteGatewayFunc(ctx, name)
	}
	return nil
}

// CreateGateway implements GatewayManager.
func (m *MockManager) CreateGateway(ctx context.Context, parent, gatewayID, apiConfigName string) error {
	m.Calls.CreateGateway++
	if m.CreateGatewayFunc != nil {
		return m.CreateGatewayFunc(ctx, parent, gatewayID, apiConfigName)
	}
	return nil
}
