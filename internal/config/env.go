package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// ErrEnvFileNotFound indicates no .env file exists in the working directory
// or any of its parents. Startup treats this as fatal.
var ErrEnvFileNotFound = errors.New(".env file not found")

// envFileName is the dotenv file discovered by FindEnvFile.
const envFileName = ".env"

// FindEnvFile walks from the current working directory toward the filesystem
// root and returns the first .env file found.
func FindEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return findEnvFileFrom(dir)
}

func findEnvFileFrom(dir string) (string, error) {
	for {
		path := filepath.Join(dir, envFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrEnvFileNotFound
		}
		dir = parent
	}
}

// LoadEnvVars loads the dotenv file into the process environment (existing
// variables win) and returns the variables whose names carry the prefix.
// The returned map is what gets forwarded to the deployed container; process
// variables that already matched the prefix are included.
func LoadEnvVars(path, prefix string) (map[string]string, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	vars := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		vars[key] = value
	}
	return vars, nil
}
