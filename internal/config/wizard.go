package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/robfig/cron/v3"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	AdminUser  string
	SSHPort    string
	Domain     string
	PHPVersion string
	WebhookURL string
	CPU        string
	Memory     string
	Disk       string

	// Advanced-mode fields. Blank values fall back to defaults.
	DatabaseName      string
	DatabaseUser      string
	ReportHour        string
	ResourcesSchedule string
	SecuritySchedule  string
	StateDir          string
}

// RunWizard runs the interactive configuration wizard. With advanced set,
// it also asks for the site database, monitoring schedules, report hour
// and state directory; otherwise those keep their defaults.
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		AdminUser:  "deploy",
		SSHPort:    "22",
		PHPVersion: "8.3",
		CPU:        "80",
		Memory:     "90",
		Disk:       "85",

		DatabaseName:      "wordpress",
		DatabaseUser:      "wordpress",
		ReportHour:        "0",
		ResourcesSchedule: "*/5 * * * *",
		SecuritySchedule:  "0 * * * *",
		StateDir:          DefaultStateDir,
	}

	groups := []*huh.Group{
		// Server access
		huh.NewGroup(
			huh.NewInput().
				Title("Admin user").
				Description("Non-root login created during setup").
				Value(&result.AdminUser).
				Validate(validateAdminUser),

			huh.NewInput().
				Title("SSH port").
				Description("Hardened sshd listen port (default 22)").
				Value(&result.SSHPort).
				Validate(validatePort),
		),

		// Site
		huh.NewGroup(
			huh.NewInput().
				Title("Domain (optional)").
				Description("Primary vhost domain. Leave empty to serve the default site.").
				Placeholder("example.com").
				Value(&result.Domain).
				Validate(validateDomain),

			huh.NewSelect[string]().
				Title("PHP version").
				Options(
					huh.NewOption("PHP 8.3", "8.3"),
					huh.NewOption("PHP 8.2", "8.2"),
					huh.NewOption("PHP 8.1", "8.1"),
				).
				Value(&result.PHPVersion),
		),

		// Alerting
		huh.NewGroup(
			huh.NewInput().
				Title("Webhook URL").
				Description("Discord-compatible webhook for alerts. Required for monitoring.").
				Placeholder("https://discord.com/api/webhooks/...").
				Value(&result.WebhookURL).
				Validate(validateWebhookURL),
		),

		// Thresholds
		huh.NewGroup(
			huh.NewInput().
				Title("CPU alert threshold (%)").
				Value(&result.CPU).
				Validate(validatePercent),
			huh.NewInput().
				Title("Memory alert threshold (%)").
				Value(&result.Memory).
				Validate(validatePercent),
			huh.NewInput().
				Title("Disk alert threshold (%)").
				Value(&result.Disk).
				Validate(validatePercent),
		),
	}

	if advanced {
		groups = append(groups,
			// Site database
			huh.NewGroup(
				huh.NewInput().
					Title("Database name").
					Value(&result.DatabaseName).
					Validate(validateDatabaseName),
				huh.NewInput().
					Title("Database user").
					Value(&result.DatabaseUser).
					Validate(validateDatabaseName),
			),

			// Monitoring
			huh.NewGroup(
				huh.NewInput().
					Title("Resource check schedule").
					Description("Cron expression for daemon-mode resource checks").
					Value(&result.ResourcesSchedule).
					Validate(validateCron),
				huh.NewInput().
					Title("Security check schedule").
					Description("Cron expression for daemon-mode security checks").
					Value(&result.SecuritySchedule).
					Validate(validateCron),
				huh.NewInput().
					Title("Daily report hour (0-23)").
					Value(&result.ReportHour).
					Validate(validateHour),
				huh.NewInput().
					Title("State directory").
					Description("Holds the stage ledgers and monitor state").
					Value(&result.StateDir).
					Validate(validateStateDir),
			),
		)
	}

	if err := huh.NewForm(groups...).RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}
	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults applied.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Server: Server{
			AdminUser: strings.TrimSpace(r.AdminUser),
			SSHPort:   mustAtoi(r.SSHPort),
		},
		Site: Site{
			Domain:       strings.TrimSpace(r.Domain),
			PHPVersion:   r.PHPVersion,
			DatabaseName: strings.TrimSpace(r.DatabaseName),
			DatabaseUser: strings.TrimSpace(r.DatabaseUser),
		},
		Webhook: Webhook{
			URL: strings.TrimSpace(r.WebhookURL),
		},
		Thresholds: Thresholds{
			CPUPercent:    mustAtoi(r.CPU),
			MemoryPercent: mustAtoi(r.Memory),
			DiskPercent:   mustAtoi(r.Disk),
		},
		Monitor: Monitor{
			ResourcesSchedule: strings.TrimSpace(r.ResourcesSchedule),
			SecuritySchedule:  strings.TrimSpace(r.SecuritySchedule),
			ReportHour:        mustAtoi(r.ReportHour),
		},
		StateDir: strings.TrimSpace(r.StateDir),
	}
	cfg.ApplyDefaults()
	return cfg
}

// mustAtoi converts wizard input already checked by a validator.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func validateAdminUser(s string) error {
	if !isValidUnixName(strings.TrimSpace(s)) {
		return fmt.Errorf("must be a valid unix username (lowercase, starts with a letter)")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("must be a port number 1-65535")
	}
	return nil
}

func validatePercent(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 100 {
		return fmt.Errorf("must be a percentage 1-100")
	}
	return nil
}

func validateDomain(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil // Optional
	}
	if !domainRegex.MatchString(s) {
		return fmt.Errorf("invalid domain format (expected example.com)")
	}
	return nil
}

func validateDatabaseName(s string) error {
	if !isValidUnixName(strings.TrimSpace(s)) {
		return fmt.Errorf("must be lowercase letters, digits or underscores, starting with a letter")
	}
	return nil
}

func validateHour(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 23 {
		return fmt.Errorf("must be an hour 0-23")
	}
	return nil
}

func validateCron(s string) error {
	if _, err := cron.ParseStandard(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a standard cron expression")
	}
	return nil
}

func validateStateDir(s string) error {
	if !strings.HasPrefix(strings.TrimSpace(s), "/") {
		return fmt.Errorf("must be an absolute path")
	}
	return nil
}

func validateWebhookURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil // Optional at init time; required before monitoring
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}
