// Package resource builds descriptors for the managed cloud objects that a
// deployment converges: the Cloud Run service, the gateway API, its config,
// and the gateway itself. Construction is pure; nothing here talks to the
// provider.
package resource

import "fmt"

// Kind identifies a managed resource type.
type Kind string

const (
	KindService          Kind = "service"
	KindGatewayAPI       Kind = "api"
	KindGatewayAPIConfig Kind = "api config"
	KindGateway          Kind = "gateway"
)

// Descriptor identifies one remote resource to converge. Name is the
// provider's fully qualified resource path and is unique within the kind;
// ID is the short name within Parent.
type Descriptor struct {
	Kind   Kind
	Name   string
	Parent string
	ID     string
}

func validateIdentifiers(fields map[string]string) error {
	for label, v := range fields {
		if v == "" {
			return fmt.Errorf("%s must not be empty", label)
		}
	}
	return nil
}

// NewServiceDescriptor describes a Cloud Run service in a region.
func NewServiceDescriptor(projectID, region, name string) (Descriptor, error) {
	if err := validateIdentifiers(map[string]string{
		"project id": projectID, "region": region, "service name": name,
	}); err != nil {
		return Descriptor{}, err
	}
	parent := fmt.Sprintf("projects/%s/locations/%s", projectID, region)
	return Descriptor{
		Kind:   KindService,
		Name:   fmt.Sprintf("%s/services/%s", parent, name),
		Parent: parent,
		ID:     name,
	}, nil
}

// NewAPIDescriptor describes a gateway API. APIs are global resources.
func NewAPIDescriptor(projectID, apiID string) (Descriptor, error) {
	if err := validateIdentifiers(map[string]string{
		"project id": projectID, "api id": apiID,
	}); err != nil {
		return Descriptor{}, err
	}
	parent := fmt.Sprintf("projects/%s/locations/global", projectID)
	return Descriptor{
		Kind:   KindGatewayAPI,
		Name:   fmt.Sprintf("%s/apis/%s", parent, apiID),
		Parent: parent,
		ID:     apiID,
	}, nil
}

// NewAPIConfigDescriptor describes a config attached to a gateway API.
func NewAPIConfigDescriptor(projectID, apiID, configID string) (Descriptor, error) {
	if err := validateIdentifiers(map[string]string{
		"project id": projectID, "api id": apiID, "api config id": configID,
	}); err != nil {
		return Descriptor{}, err
	}
	parent := fmt.Sprintf("projects/%s/locations/global/apis/%s", projectID, apiID)
	return Descriptor{
		Kind:   KindGatewayAPIConfig,
		Name:   fmt.Sprintf("%s/configs/%s", parent, configID),
		Parent: parent,
		ID:     configID,
	}, nil
}

// NewGatewayDescriptor describes a gateway endpoint in a region.
func NewGatewayDescriptor(projectID, region, name string) (Descriptor, error) {
	if err := validateIdentifiers(map[string]string{
		"project id": projectID, "region": region, "gateway name": name,
	}); err != nil {
		return Descriptor{}, err
	}
	parent := fmt.Sprintf("projects/%s/locations/%s", projectID, region)
	return Descriptor{
		Kind:   KindGateway,
		Name:   fmt.Sprintf("%s/gateways/%s", parent, name),
		Parent: parent,
		ID:     name,
	}, nil
}
