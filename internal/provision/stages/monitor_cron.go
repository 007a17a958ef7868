package stages

import (
	"fmt"
	"path/filepath"

	"github.com/provost-sh/provost/internal/provision"
)

// monitorCron installs the cron entries that drive the monitoring checks:
// resources every five minutes, security hourly, the daily report once the
// configured hour is reached.
type monitorCron struct{}

func (s *monitorCron) Name() string { return "monitor_cron" }

func (s *monitorCron) Provision(ctx *provision.Context) error {
	binary, err := ctx.System.LookPath("provost")
	if err != nil {
		binary = "/usr/local/bin/provost"
	}

	entries, err := render("cron", monitorCronTemplate, map[string]any{
		"Binary":     binary,
		"Config":     filepath.Join("/etc/provost", "provost.yaml"),
		"ReportHour": ctx.Config.Monitor.ReportHour,
	})
	if err != nil {
		return err
	}
	if err := ctx.System.WriteFile("/etc/cron.d/provost", entries, 0o644); err != nil {
		return fmt.Errorf("failed to write cron entries: %w", err)
	}
	if err := ctx.System.RestartService(ctx, "cron"); err != nil {
		return fmt.Errorf("failed to restart cron: %w", err)
	}
	return nil
}
