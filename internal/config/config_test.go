package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromBytes_Defaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("server:\n  admin_user: ops\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes() error: %v", err)
	}

	if cfg.Server.AdminUser != "ops" {
		t.Errorf("admin_user = %q, want ops", cfg.Server.AdminUser)
	}
	if cfg.Server.SSHPort != 22 {
		t.Errorf("ssh_port default = %d, want 22", cfg.Server.SSHPort)
	}
	if cfg.Thresholds.CPUPercent != 80 || cfg.Thresholds.MemoryPercent != 90 || cfg.Thresholds.DiskPercent != 85 {
		t.Errorf("threshold defaults = %+v", cfg.Thresholds)
	}
	if cfg.Monitor.ResourcesSchedule != "*/5 * * * *" {
		t.Errorf("resources_schedule default = %q", cfg.Monitor.ResourcesSchedule)
	}
	if cfg.StateDir != DefaultStateDir {
		t.Errorf("state_dir default = %q", cfg.StateDir)
	}
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	if _, err := LoadFromBytes([]byte("server: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad admin user",
			mutate:  func(c *Config) { c.Server.AdminUser = "Root!" },
			wantErr: "admin_user",
		},
		{
			name:    "bad ssh port",
			mutate:  func(c *Config) { c.Server.SSHPort = 70000 },
			wantErr: "ssh_port",
		},
		{
			name:    "bad domain",
			mutate:  func(c *Config) { c.Site.Domain = "not a domain" },
			wantErr: "site.domain",
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.Thresholds.CPUPercent = 150 },
			wantErr: "cpu_percent",
		},
		{
			name:    "bad report hour",
			mutate:  func(c *Config) { c.Monitor.ReportHour = 24 },
			wantErr: "report_hour",
		},
		{
			name:    "bad cron expression",
			mutate:  func(c *Config) { c.Monitor.SecuritySchedule = "every hour" },
			wantErr: "security_schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.SSHPort = 0
	cfg.Thresholds.DiskPercent = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	for _, want := range []string{"ssh_port", "disk_percent"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error %q missing %q", err, want)
		}
	}
}

func TestRequireWebhook(t *testing.T) {
	cfg := Default()
	if err := cfg.RequireWebhook(); err == nil {
		t.Error("RequireWebhook() = nil with no URL, want error")
	}

	cfg.Webhook.URL = "https://discord.com/api/webhooks/1/abc"
	if err := cfg.RequireWebhook(); err != nil {
		t.Errorf("RequireWebhook() = %v, want nil", err)
	}
}

func TestWebhookEnvOverride(t *testing.T) {
	t.Setenv("PROVOST_WEBHOOK_URL", "https://hooks.example.com/x")

	cfg, err := LoadFromBytes([]byte("webhook:\n  url: https://discord.com/api/webhooks/1/a\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes() error: %v", err)
	}
	if cfg.Webhook.URL != "https://hooks.example.com/x" {
		t.Errorf("env override not applied: %q", cfg.Webhook.URL)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Site.Domain = "example.com"
	cfg.Webhook.URL = "https://discord.com/api/webhooks/1/a"

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Site.Domain != "example.com" {
		t.Errorf("domain = %q after round trip", loaded.Site.Domain)
	}
	if loaded.Server.AdminUser != cfg.Server.AdminUser {
		t.Errorf("admin_user = %q after round trip", loaded.Server.AdminUser)
	}
}

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()
	if timeouts.NotifyMaxAttempt != 3 {
		t.Errorf("NotifyMaxAttempt = %d, want 3", timeouts.NotifyMaxAttempt)
	}
	if timeouts.NotifyRetryDelay != 5*time.Second {
		t.Errorf("NotifyRetryDelay = %v, want 5s", timeouts.NotifyRetryDelay)
	}
	if timeouts.Stage != 10*time.Minute {
		t.Errorf("Stage = %v, want 10m", timeouts.Stage)
	}
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("PROVOST_NOTIFY_MAX_ATTEMPTS", "5")
	t.Setenv("PROVOST_NOTIFY_RETRY_DELAY", "250ms")
	t.Setenv("PROVOST_TIMEOUT_STAGE", "garbage")

	timeouts := LoadTimeouts()
	if timeouts.NotifyMaxAttempt != 5 {
		t.Errorf("NotifyMaxAttempt = %d, want 5", timeouts.NotifyMaxAttempt)
	}
	if timeouts.NotifyRetryDelay != 250*time.Millisecond {
		t.Errorf("NotifyRetryDelay = %v, want 250ms", timeouts.NotifyRetryDelay)
	}
	// Unparseable values fall back to the default
	if timeouts.Stage != 10*time.Minute {
		t.Errorf("Stage = %v, want default 10m on bad input", timeouts.Stage)
	}
}

func TestWizardResultToConfig(t *testing.T) {
	r := &WizardResult{
		AdminUser:  "deploy",
		SSHPort:    "2222",
		Domain:     "blog.example.com",
		PHPVersion: "8.2",
		WebhookURL: "https://discord.com/api/webhooks/1/a",
		CPU:        "75",
		Memory:     "85",
		Disk:       "90",
	}

	cfg := r.ToConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("wizard-produced config invalid: %v", err)
	}
	if cfg.Server.SSHPort != 2222 {
		t.Errorf("ssh_port = %d", cfg.Server.SSHPort)
	}
	if cfg.Thresholds.CPUPercent != 75 {
		t.Errorf("cpu threshold = %d", cfg.Thresholds.CPUPercent)
	}
	if cfg.Site.DatabaseName != "wordpress" {
		t.Errorf("database_name default missing: %q", cfg.Site.DatabaseName)
	}
}
