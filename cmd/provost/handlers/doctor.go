package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/provost-sh/provost/internal/ui/console"
	"github.com/provost-sh/provost/internal/util/prerequisites"
)

// DoctorStatus is the host diagnostic summary.
type DoctorStatus struct {
	ConfigPath        string   `json:"configPath"`
	ConfigValid       bool     `json:"configValid"`
	ConfigError       string   `json:"configError,omitempty"`
	WebhookConfigured bool     `json:"webhookConfigured"`
	MissingTools      []string `json:"missingTools,omitempty"`
	SetupStages       []string `json:"setupStages"`
	WordPressStages   []string `json:"wordpressStages"`
}

// Doctor checks the host: config presence and validity, required tools,
// and how far the provisioning pipelines have progressed.
func Doctor(_ context.Context, configPath string, jsonOutput bool) error {
	status := DoctorStatus{SetupStages: []string{}, WordPressStages: []string{}}

	cfg, err := loadConfig(configPath)
	if err != nil {
		status.ConfigError = err.Error()
	} else {
		status.ConfigValid = true
		status.WebhookConfigured = cfg.Webhook.URL != ""
		if found, ferr := findConfigFile(); ferr == nil && configPath == "" {
			status.ConfigPath = found
		} else {
			status.ConfigPath = configPath
		}

		for _, pipeline := range []string{"setup", "wordpress"} {
			done, lerr := newLedger(ledgerPath(cfg, pipeline)).Completed()
			if lerr != nil {
				status.ConfigError = lerr.Error()
				continue
			}
			if pipeline == "setup" {
				status.SetupStages = done
			} else {
				status.WordPressStages = done
			}
		}
	}

	env := newEnvironment()
	results := prerequisites.CheckAll(env)
	for _, tool := range results.Missing {
		status.MissingTools = append(status.MissingTools, tool.Name)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	printDoctorStatus(status, results)

	if results.HasErrors() {
		return results.Error()
	}
	if !status.ConfigValid {
		return fmt.Errorf("configuration problem: %s", status.ConfigError)
	}
	return nil
}

func printDoctorStatus(status DoctorStatus, results *prerequisites.CheckResults) {
	p := console.New()

	if status.ConfigValid {
		p.Success("config loaded from %s", status.ConfigPath)
	} else {
		p.Error("config: %s", status.ConfigError)
	}

	if status.WebhookConfigured {
		p.Success("webhook configured")
	} else {
		p.Warn("webhook not configured: notify and monitor commands will fail")
	}

	for _, r := range results.Results {
		switch {
		case r.Found:
			p.Success("%s found at %s", r.Tool.Name, r.Path)
		case r.Tool.Required:
			p.Error("%s missing: %s", r.Tool.Name, r.Tool.Description)
		default:
			p.Warn("%s not found (%s)", r.Tool.Name, r.Tool.Description)
		}
	}

	p.Info("setup stages completed: %d", len(status.SetupStages))
	p.Info("wordpress stages completed: %d", len(status.WordPressStages))
}
