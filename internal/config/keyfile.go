package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrKeyFileNotFound indicates no service-account key file matched the
// configured glob. Startup treats this as fatal unless credentials were
// given explicitly.
var ErrKeyFileNotFound = errors.New("no service account key file found")

// FindKeyFile returns the first service-account key file in dir matching the
// glob pattern. Matches are sorted so discovery is deterministic when several
// keys are present.
func FindKeyFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("invalid key file pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", ErrKeyFileNotFound
	}
	sort.Strings(matches)
	return matches[0], nil
}
