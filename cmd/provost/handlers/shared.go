// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/ledger"
	"github.com/provost-sh/provost/internal/notify"
	"github.com/provost-sh/provost/internal/platform/system"
)

// Factory function variables - can be replaced in tests for dependency
// injection.
var (
	// newEnvironment creates the host environment.
	newEnvironment = func() system.Environment {
		return system.NewExecEnvironment()
	}

	// newLedger opens the stage ledger at the given path.
	newLedger = func(path string) ledger.Ledger {
		return ledger.NewFileLedger(path)
	}

	// newNotifier builds a notifier from the configuration.
	newNotifier = func(cfg *config.Config) *notify.Notifier {
		t := config.LoadTimeouts()
		return notify.New(cfg.Webhook.URL,
			notify.WithUsername(cfg.Webhook.Username),
			notify.WithVersion(version),
			notify.WithMaxAttempts(t.NotifyMaxAttempt),
			notify.WithRetryDelay(t.NotifyRetryDelay),
		)
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds the config file (for testing injection).
	findConfigFile = config.FindConfigFile
)

// version is stamped by SetVersion from main's build information.
var version = "dev"

// SetVersion records the binary version for notification footers.
func SetVersion(v string) {
	version = v
}

// loadConfig resolves and loads the configuration. An empty path triggers
// the default search (working directory, then /etc/provost).
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// ledgerPath returns the ledger file for a pipeline under the state dir.
func ledgerPath(cfg *config.Config, pipeline string) string {
	return filepath.Join(cfg.StateDir, pipeline+".ledger")
}
