package config

import (
	"os"
	"time"
)

// Timeouts holds the retry budget for convergence polling.
// Values can be customized via environment variables.
type Timeouts struct {
	PollInterval time.Duration // Sleep between convergence checks
	ConfigCreate time.Duration // Deadline for API config creation retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - GCPMSM_POLL_INTERVAL (default: 5s)
//   - GCPMSM_TIMEOUT_CONFIG_CREATE (default: 10m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval: parseDuration("GCPMSM_POLL_INTERVAL", 5*time.Second),
		ConfigCreate: parseDuration("GCPMSM_TIMEOUT_CONFIG_CREATE", 10*time.Minute),
	}
}

// TestTimeouts returns timeouts small enough for unit tests.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval: time.Millisecond,
		ConfigCreate: 100 * time.Millisecond,
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
