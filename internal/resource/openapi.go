package resource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OpenAPIDocument is an OpenAPI spec read from disk, uploaded verbatim as the
// gateway API config source.
type OpenAPIDocument struct {
	Path     string
	Contents []byte
}

// LoadOpenAPIDocument reads the document and verifies it parses as YAML, so a
// malformed spec fails here rather than minutes into config creation.
func LoadOpenAPIDocument(path string) (OpenAPIDocument, error) {
	if path == "" {
		return OpenAPIDocument{}, fmt.Errorf("openapi document path must not be empty")
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return OpenAPIDocument{}, fmt.Errorf("failed to read openapi document: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return OpenAPIDocument{}, fmt.Errorf("openapi document %s is not valid YAML: %w", path, err)
	}
	if len(doc) == 0 {
		return OpenAPIDocument{}, fmt.Errorf("openapi document %s is empty", path)
	}

	return OpenAPIDocument{Path: path, Contents: data}, nil
}
