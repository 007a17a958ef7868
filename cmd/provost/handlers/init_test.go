package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/provost-sh/provost/internal/config"
)

func TestInit_WritesWizardResult(t *testing.T) {
	origWizard := runWizard
	runWizard = func(context.Context, bool) (*config.WizardResult, error) {
		return &config.WizardResult{
			AdminUser:  "deploy",
			SSHPort:    "2222",
			Domain:     "example.com",
			PHPVersion: "8.3",
			WebhookURL: "https://discord.com/api/webhooks/1/x",
			CPU:        "80",
			Memory:     "90",
			Disk:       "85",
		}, nil
	}
	t.Cleanup(func() { runWizard = origWizard })

	outPath := filepath.Join(t.TempDir(), "provost.yaml")
	if err := Init(context.Background(), outPath, false); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	cfg, err := config.Load(outPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Server.SSHPort != 2222 {
		t.Errorf("ssh_port = %d, want 2222", cfg.Server.SSHPort)
	}
	if cfg.Site.Domain != "example.com" {
		t.Errorf("domain = %q", cfg.Site.Domain)
	}
}

func TestInit_AdvancedWritesExtendedSettings(t *testing.T) {
	origWizard := runWizard
	var gotAdvanced bool
	runWizard = func(_ context.Context, advanced bool) (*config.WizardResult, error) {
		gotAdvanced = advanced
		return &config.WizardResult{
			AdminUser:         "deploy",
			SSHPort:           "22",
			PHPVersion:        "8.3",
			CPU:               "80",
			Memory:            "90",
			Disk:              "85",
			DatabaseName:      "shopdb",
			DatabaseUser:      "shop",
			ReportHour:        "7",
			ResourcesSchedule: "*/10 * * * *",
			SecuritySchedule:  "30 * * * *",
			StateDir:          "/srv/provost-state",
		}, nil
	}
	t.Cleanup(func() { runWizard = origWizard })

	outPath := filepath.Join(t.TempDir(), "provost.yaml")
	if err := Init(context.Background(), outPath, true); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if !gotAdvanced {
		t.Error("wizard ran without the advanced groups")
	}

	cfg, err := config.Load(outPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Site.DatabaseName != "shopdb" || cfg.Site.DatabaseUser != "shop" {
		t.Errorf("database = %q/%q, want shopdb/shop", cfg.Site.DatabaseName, cfg.Site.DatabaseUser)
	}
	if cfg.Monitor.ReportHour != 7 {
		t.Errorf("report_hour = %d, want 7", cfg.Monitor.ReportHour)
	}
	if cfg.Monitor.ResourcesSchedule != "*/10 * * * *" {
		t.Errorf("resources_schedule = %q", cfg.Monitor.ResourcesSchedule)
	}
	if cfg.StateDir != "/srv/provost-state" {
		t.Errorf("state_dir = %q", cfg.StateDir)
	}
}

func TestInit_WizardCancelPropagates(t *testing.T) {
	origWizard := runWizard
	runWizard = func(context.Context, bool) (*config.WizardResult, error) {
		return nil, errors.New("wizard canceled: user aborted")
	}
	t.Cleanup(func() { runWizard = origWizard })

	if err := Init(context.Background(), filepath.Join(t.TempDir(), "provost.yaml"), false); err == nil {
		t.Fatal("Init() = nil, want wizard error")
	}
}
