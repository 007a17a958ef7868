package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the tunable timeout and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	Stage            time.Duration // Timeout for a single provisioning stage
	PackageInstall   time.Duration // Timeout for package installation
	NotifyMaxAttempt int           // Delivery attempts per notification
	NotifyRetryDelay time.Duration // Fixed delay between delivery attempts
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - PROVOST_TIMEOUT_STAGE (default: 10m)
//   - PROVOST_TIMEOUT_PACKAGES (default: 15m)
//   - PROVOST_NOTIFY_MAX_ATTEMPTS (default: 3)
//   - PROVOST_NOTIFY_RETRY_DELAY (default: 5s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Stage:            parseDuration("PROVOST_TIMEOUT_STAGE", 10*time.Minute),
		PackageInstall:   parseDuration("PROVOST_TIMEOUT_PACKAGES", 15*time.Minute),
		NotifyMaxAttempt: parseInt("PROVOST_NOTIFY_MAX_ATTEMPTS", 3),
		NotifyRetryDelay: parseDuration("PROVOST_NOTIFY_RETRY_DELAY", 5*time.Second),
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

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
