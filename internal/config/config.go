package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/robfig/cron/v3"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "provost.yaml"

// DefaultStateDir is where ledgers and monitor state live unless overridden.
const DefaultStateDir = "/var/lib/provost"

// domainRegex is compiled once at package init for domain validation.
var domainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)

// Config is the provost configuration.
type Config struct {
	// Server describes the machine being provisioned.
	Server Server `yaml:"server"`

	// Site describes the web site served by the machine.
	Site Site `yaml:"site"`

	// Webhook configures alert delivery. The URL is the only setting in
	// the whole config without a usable default.
	Webhook Webhook `yaml:"webhook"`

	// Thresholds are the resource alert thresholds in percent.
	Thresholds Thresholds `yaml:"thresholds"`

	// Monitor configures the monitoring schedules and daily report.
	Monitor Monitor `yaml:"monitor"`

	// StateDir holds the stage ledgers and monitor state files.
	StateDir string `yaml:"state_dir,omitempty"`
}

// Server describes the machine being provisioned.
type Server struct {
	// AdminUser is the non-root login created during setup.
	AdminUser string `yaml:"admin_user"`

	// SSHPort is the hardened sshd listen port.
	SSHPort int `yaml:"ssh_port"`

	// Timezone is applied during the system stage.
	Timezone string `yaml:"timezone,omitempty"`
}

// Site describes the web site served by the machine.
type Site struct {
	// Domain is the primary vhost domain.
	Domain string `yaml:"domain"`

	// PHPVersion selects the PHP-FPM package series (e.g. "8.3").
	PHPVersion string `yaml:"php_version"`

	// DatabaseName is the MySQL database created for the site.
	// Defaults to "wordpress".
	DatabaseName string `yaml:"database_name,omitempty"`

	// DatabaseUser is the MySQL user created for the site.
	// Defaults to "wordpress".
	DatabaseUser string `yaml:"database_user,omitempty"`
}

// Webhook configures alert delivery.
type Webhook struct {
	// URL is the Discord-compatible webhook endpoint. Mandatory for the
	// notify and monitor commands; overridable via PROVOST_WEBHOOK_URL.
	URL string `yaml:"url"`

	// Username is the display name messages are posted under.
	Username string `yaml:"username,omitempty"`
}

// Thresholds are the resource alert thresholds in percent.
type Thresholds struct {
	CPUPercent    int `yaml:"cpu_percent"`
	MemoryPercent int `yaml:"memory_percent"`
	DiskPercent   int `yaml:"disk_percent"`
}

// Monitor configures the monitoring schedules and daily report.
type Monitor struct {
	// ResourcesSchedule is the cron expression for resource checks in
	// daemon mode.
	ResourcesSchedule string `yaml:"resources_schedule,omitempty"`

	// SecuritySchedule is the cron expression for security checks in
	// daemon mode.
	SecuritySchedule string `yaml:"security_schedule,omitempty"`

	// ReportHour is the earliest local hour (0-23) at which the daily
	// status report may be sent.
	ReportHour int `yaml:"report_hour"`

	// MetricsAddr is the listen address for Prometheus metrics in daemon
	// mode. Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`

	// AuthLogPath is the sshd auth log inspected by the security check.
	AuthLogPath string `yaml:"auth_log_path,omitempty"`
}

// Default returns a configuration with every default applied and no
// webhook URL.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.AdminUser == "" {
		c.Server.AdminUser = "deploy"
	}
	if c.Server.SSHPort == 0 {
		c.Server.SSHPort = 22
	}
	if c.Site.PHPVersion == "" {
		c.Site.PHPVersion = "8.3"
	}
	if c.Site.DatabaseName == "" {
		c.Site.DatabaseName = "wordpress"
	}
	if c.Site.DatabaseUser == "" {
		c.Site.DatabaseUser = "wordpress"
	}
	if c.Webhook.Username == "" {
		c.Webhook.Username = "provost"
	}
	if c.Thresholds.CPUPercent == 0 {
		c.Thresholds.CPUPercent = 80
	}
	if c.Thresholds.MemoryPercent == 0 {
		c.Thresholds.MemoryPercent = 90
	}
	if c.Thresholds.DiskPercent == 0 {
		c.Thresholds.DiskPercent = 85
	}
	if c.Monitor.ResourcesSchedule == "" {
		c.Monitor.ResourcesSchedule = "*/5 * * * *"
	}
	if c.Monitor.SecuritySchedule == "" {
		c.Monitor.SecuritySchedule = "0 * * * *"
	}
	if c.Monitor.AuthLogPath == "" {
		c.Monitor.AuthLogPath = "/var/log/auth.log"
	}
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
	if env := os.Getenv("PROVOST_WEBHOOK_URL"); env != "" {
		c.Webhook.URL = env
	}
}

// Validate checks the configuration and returns all problems joined.
// The webhook URL is intentionally not required here: provisioning works
// without one, and the notify path validates it before use.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.AdminUser == "" {
		errs = append(errs, errors.New("server.admin_user is required"))
	} else if !isValidUnixName(c.Server.AdminUser) {
		errs = append(errs, fmt.Errorf("server.admin_user %q must be a valid unix username", c.Server.AdminUser))
	}
	if c.Server.SSHPort < 1 || c.Server.SSHPort > 65535 {
		errs = append(errs, fmt.Errorf("server.ssh_port %d must be 1-65535", c.Server.SSHPort))
	}

	if c.Site.Domain != "" && !domainRegex.MatchString(c.Site.Domain) {
		errs = append(errs, fmt.Errorf("site.domain %q must be a valid domain name", c.Site.Domain))
	}

	for name, v := range map[string]int{
		"thresholds.cpu_percent":    c.Thresholds.CPUPercent,
		"thresholds.memory_percent": c.Thresholds.MemoryPercent,
		"thresholds.disk_percent":   c.Thresholds.DiskPercent,
	} {
		if v < 1 || v > 100 {
			errs = append(errs, fmt.Errorf("%s %d must be 1-100", name, v))
		}
	}

	if c.Monitor.ReportHour < 0 || c.Monitor.ReportHour > 23 {
		errs = append(errs, fmt.Errorf("monitor.report_hour %d must be 0-23", c.Monitor.ReportHour))
	}
	for name, expr := range map[string]string{
		"monitor.resources_schedule": c.Monitor.ResourcesSchedule,
		"monitor.security_schedule":  c.Monitor.SecuritySchedule,
	} {
		if _, err := cron.ParseStandard(expr); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", name, expr, err))
		}
	}

	return errors.Join(errs...)
}

// RequireWebhook returns an error unless a webhook URL is configured.
// Called by the notify and monitor paths before any delivery attempt.
func (c *Config) RequireWebhook() error {
	if c.Webhook.URL == "" {
		return errors.New("webhook.url is not configured (set it in provost.yaml or PROVOST_WEBHOOK_URL)")
	}
	return nil
}

// isValidUnixName checks a login name: lowercase, starts with a letter,
// letters/digits/hyphen/underscore, max 32 chars.
func isValidUnixName(name string) bool {
	if len(name) == 0 || len(name) > 32 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
