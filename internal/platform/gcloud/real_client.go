package gcloud

import (
	"context"
	"errors"
	"fmt"

	apigateway "cloud.google.com/go/apigateway/apiv1"
	"cloud.google.com/go/apigateway/apiv1/apigatewaypb"
	"cloud.google.com/go/iam/apiv1/iampb"
	run "cloud.google.com/go/run/apiv2"
	"cloud.google.com/go/run/apiv2/runpb"
	"google.golang.org/api/option"

	"github.com/MarsLyceum/gcp-microservice-management/internal/resource"
)

const (
	invokerRole     = "roles/run.invoker"
	publicPrincipal = "allUsers"
)

// RealClient implements Manager against the live Google Cloud APIs.
//
// Create and delete calls return as soon as the provider accepts them; the
// reconciler observes convergence by polling the lookup methods rather than
// awaiting the provider's long-running operations.
type RealClient struct {
	services *run.ServicesClient
	gateways *apigateway.Client
}

// NewRealClient dials the Cloud Run and API Gateway services. credentialsFile
// may be empty, in which case ambient application-default credentials apply.
func NewRealClient(ctx context.Context, credentialsFile string) (*RealClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	services, err := run.NewServicesClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud run client: %w", err)
	}

	gateways, err := apigateway.NewClient(ctx, opts...)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to create api gateway client: %w", err)
	}

	return &RealClient{services: services, gateways: gateways}, nil
}

// Close releases both underlying connections.
func (c *RealClient) Close() error {
	return errors.Join(c.services.Close(), c.gateways.Close())
}

// --- Cloud Run ---

// GetService implements ServiceManager.
func (c *RealClient) GetService(ctx context.Context, name string) (*runpb.Service, bool, error) {
	svc, err := c.services.GetService(ctx, &runpb.GetServiceRequest{Name: name})
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get service %s: %w", name, err)
	}
	return svc, true, nil
}

// DeleteService implements ServiceManager.
func (c *RealClient) DeleteService(ctx context.Context, name string) error {
	_, err := c.services.DeleteService(ctx, &runpb.DeleteServiceRequest{Name: name})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", name, err)
	}
	return nil
}

// CreateService implements ServiceManager.
func (c *RealClient) CreateService(ctx context.Context, parent, serviceID string, spec resource.ServiceSpec) error {
	_, err := c.services.CreateService(ctx, &runpb.CreateServiceRequest{
		Parent:    parent,
		ServiceId: serviceID,
		Service:   serviceFromSpec(spec),
	})
	if err != nil {
		return fmt.Errorf("failed to create service %s: %w", serviceID, err)
	}
	return nil
}

// AllowUnauthenticated implements ServiceManager. It performs a get-modify-set
// on the service's IAM policy, adding allUsers to the invoker role.
func (c *RealClient) AllowUnauthenticated(ctx context.Context, name string) error {
	policy, err := c.services.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{Resource: name})
	if err != nil {
		return fmt.Errorf("failed to get iam policy for %s: %w", name, err)
	}

	if !bindInvoker(policy) {
		return nil // binding already present
	}

	if _, err := c.services.SetIamPolicy(ctx, &iampb.SetIamPolicyRequest{
		Resource: name,
		Policy:   policy,
	}); err != nil {
		return fmt.Errorf("failed to set iam policy for %s: %w", name, err)
	}
	return nil
}

// bindInvoker adds the public invoker binding to the policy in place and
// reports whether the policy changed.
func bindInvoker(policy *iampb.Policy) bool {
	for _, binding := range policy.Bindings {
		if binding.Role != invokerRole {
			continue
		}
		for _, member := range binding.Members {
			if member == publicPrincipal {
				return false
			}
		}
		binding.Members = append(binding.Members, publicPrincipal)
		return true
	}
	policy.Bindings = append(policy.Bindings, &iampb.Binding{
		Role:    invokerRole,
		Members: []string{publicPrincipal},
	})
	return true
}

// serviceFromSpec maps the provider-agnostic spec onto the Cloud Run schema.
func serviceFromSpec(spec resource.ServiceSpec) *runpb.Service {
	env := make([]*runpb.EnvVar, 0, len(spec.EnvVars))
	for _, key := range resource.SortedEnvKeys(spec.EnvVars) {
		env = append(env, &runpb.EnvVar{
			Name:   key,
			Values: &runpb.EnvVar_Value{Value: spec.EnvVars[key]},
		})
	}

	mounts := make([]*runpb.VolumeMount, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		mounts = append(mounts, &runpb.VolumeMount{Name: m.Name, MountPath: m.MountPath})
	}

	volumes := make([]*runpb.Volume, 0, len(spec.Volumes))
	for _, v := range spec.Volumes {
		volumes = append(volumes, &runpb.Volume{
			Name: v.Name,
			VolumeType: &runpb.Volume_CloudSqlInstance{
				CloudSqlInstance: &runpb.CloudSqlInstance{Instances: v.CloudSQLInstances},
			},
		})
	}

	var annotations map[string]string
	if len(spec.Annotations) > 0 {
		annotations = spec.Annotations
	}

	return &runpb.Service{
		Template: &runpb.RevisionTemplate{
			Containers: []*runpb.Container{{
				Image:        spec.Image,
				Env:          env,
				VolumeMounts: mounts,
			}},
			Volumes:     volumes,
			Annotations: annotations,
		},
	}
}

// --- API Gateway ---

// GetAPI implements GatewayManager.
func (c *RealClient) GetAPI(ctx context.Context, name string) (*apigatewaypb.Api, bool, error) {
	api, err := c.gateways.GetApi(ctx, &apigatewaypb.GetApiRequest{Name: name})
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get api %s: %w", name, err)
	}
	return api, true, nil
}

// DeleteAPI implements GatewayManager.
func (c *RealClient) DeleteAPI(ctx context.Context, name string) error {
	_, err := c.gateways.DeleteApi(ctx, &apigatewaypb.DeleteApiRequest{Name: name})
	if err != nil {
		return fmt.Errorf("failed to delete api %s: %w", name, err)
	}
	return nil
}

// CreateAPI implements GatewayManager.
func (c *RealClient) CreateAPI(ctx context.Context, parent, apiID, displayName string) error {
	_, err := c.gateways.CreateApi(ctx, &apigatewaypb.CreateApiRequest{
		Parent: parent,
		ApiId:  apiID,
		Api:    &apigatewaypb.Api{DisplayName: displayName},
	})
	if err != nil {
		return fmt.Errorf("failed to create api %s: %w", apiID, err)
	}
	return nil
}

// GetAPIConfig implements GatewayManager.
func (c *RealClient) GetAPIConfig(ctx context.Context, name string) (*apigatewaypb.ApiConfig, bool, error) {
	cfg, err := c.gateways.GetApiConfig(ctx, &apigatewaypb.GetApiConfigRequest{Name: name})
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get api config %s: %w", name, err)
	}
	return cfg, true, nil
}

// DeleteAPIConfig implements GatewayManager.
func (c *RealClient) DeleteAPIConfig(ctx context.Context, name string) error {
	_, err := c.gateways.DeleteApiConfig(ctx, &apigatewaypb.DeleteApiConfigRequest{Name: name})
	if err != nil {
		return fmt.Errorf("failed to delete api config %s: %w", name, err)
	}
	return nil
}

// CreateAPIConfig implements GatewayManager.
func (c *RealClient) CreateAPIConfig(ctx context.Context, parent, configID string, doc resource.OpenAPIDocument) error {
	_, err := c.gateways.CreateApiConfig(ctx, &apigatewaypb.CreateApiConfigRequest{
		Parent:      parent,
		ApiConfigId: configID,
		ApiConfig:   apiConfigFromDocument(configID, doc),
	})
	if err != nil {
		return fmt.Errorf("failed to create api config %s: %w", configID, err)
	}
	return nil
}

// apiConfigFromDocument maps an OpenAPI document onto the provider schema.
func apiConfigFromDocument(configID string, doc resource.OpenAPIDocument) *apigatewaypb.ApiConfig {
	return &apigatewaypb.ApiConfig{
		DisplayName: configID,
		OpenapiDocuments: []*apigatewaypb.ApiConfig_OpenApiDocument{{
			Document: &apigatewaypb.ApiConfig_File{
				Path:     doc.Path,
				Contents: doc.Contents,
			},
		}},
	}
}

// GetGateway implements GatewayManager.
func (c *RealClient) GetGateway(ctx context.Context, name string) (*apigatewaypb.Gateway, bool, error) {
	gw, err := c.gateways.GetGateway(ctx, &apigatewaypb.GetGatewayRequest{Name: name})
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get gateway %s: %w", name, err)
	}
	return gw, true, nil
}

// DeleteGateway implements GatewayManager.
func (c *RealClient) DeleteGateway(ctx context.Context, name string) error {
	_, err := c.gateways.DeleteGateway(ctx, &apigatewaypb.DeleteGatewayRequest{Name: name})
	if err != nil {
		return fmt.Errorf("failed to delete gateway %s: %w", name, err)
	}
	return nil
}

// CreateGateway implements GatewayManager.
func (c *RealClient) CreateGateway(ctx context.Context, parent, gatewayID, apiConfigName string) error {
	_, err := c.gateways.CreateGateway(ctx, &apigatewaypb.CreateGatewayRequest{
		Parent:    parent,
		GatewayId: gatewayID,
		Gateway:   &apigatewaypb.Gateway{ApiConfig: apiConfigName},
	})
	if err != nil {
		return fmt.Errorf("failed to create gateway %s: %w", gatewayID, err)
	}
	return nil
}
