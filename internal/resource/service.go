package resource

import (
	"fmt"
	"regexp"
	"sort"
)

// cloudSQLAnnotation is the revision annotation Cloud Run uses to attach
// Cloud SQL instances to a service.
const cloudSQLAnnotation = "run.googleapis.com/cloudsql-instances"

const (
	cloudSQLVolumeName = "cloudsql"
	cloudSQLMountPath  = "/cloudsql"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ServiceSpec is the desired shape of a Cloud Run service, provider-agnostic.
// The platform client maps it onto the provider's schema at create time.
type ServiceSpec struct {
	Image       string
	EnvVars     map[string]string
	Volumes     []Volume
	Mounts      []VolumeMount
	Annotations map[string]string
}

// Volume is a named volume on the service's revision template. Only Cloud SQL
// backed volumes are produced today.
type Volume struct {
	Name              string
	CloudSQLInstances []string
}

// VolumeMount mounts a named volume into the container.
type VolumeMount struct {
	Name      string
	MountPath string
}

// NewServiceSpec builds the desired spec for a service deployment. The image
// reference is derived from the registry, project, and service name. When
// cloudSQLInstance is non-empty the spec carries exactly one Cloud SQL volume,
// one mount, and the provider annotation; otherwise none of the three.
func NewServiceSpec(registry, projectID, serviceName string, envVars map[string]string, cloudSQLInstance string) (ServiceSpec, error) {
	if err := validateIdentifiers(map[string]string{
		"registry": registry, "project id": projectID, "service name": serviceName,
	}); err != nil {
		return ServiceSpec{}, err
	}
	if err := ValidateEnvVars(envVars); err != nil {
		return ServiceSpec{}, err
	}

	spec := ServiceSpec{
		Image:       fmt.Sprintf("%s/%s/%s:latest", registry, projectID, serviceName),
		EnvVars:     envVars,
		Annotations: map[string]string{},
	}

	if cloudSQLInstance != "" {
		spec.Volumes = []Volume{{
			Name:              cloudSQLVolumeName,
			CloudSQLInstances: []string{cloudSQLInstance},
		}}
		spec.Mounts = []VolumeMount{{
			Name:      cloudSQLVolumeName,
			MountPath: cloudSQLMountPath,
		}}
		spec.Annotations[cloudSQLAnnotation] = cloudSQLInstance
	}

	return spec, nil
}

// ValidateEnvVars checks that every variable name is identifier-like.
// Kind-specific naming rules beyond that are the provider's concern.
func ValidateEnvVars(envVars map[string]string) error {
	for key := range envVars {
		if !envKeyPattern.MatchString(key) {
			return fmt.Errorf("invalid environment variable name %q", key)
		}
	}
	return nil
}

// SortedEnvKeys returns the variable names in deterministic order, for
// stable provider payloads and log output.
func SortedEnvKeys(envVars map[string]string) []string {
	keys := make([]string, 0, len(envVars))
	for k := range envVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
