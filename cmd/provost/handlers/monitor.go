package handlers

import (
	"context"
	"fmt"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/monitor"
	"github.com/provost-sh/provost/internal/notify"
	"github.com/provost-sh/provost/internal/platform/system"
)

// Factory function variables for monitor - can be replaced in tests.
var (
	// newRunner wires a monitoring runner.
	newRunner = func(cfg *config.Config, n *notify.Notifier, env system.Environment) *monitor.Runner {
		return monitor.NewRunner(cfg, n, env)
	}

	// runDaemon starts the scheduling daemon.
	runDaemon = func(ctx context.Context, r *monitor.Runner) error {
		return monitor.NewDaemon(r).Run(ctx)
	}
)

// MonitorResources runs the resource-threshold check once. With force set,
// thresholds are bypassed and a synthetic status message is sent for
// operator verification.
func MonitorResources(ctx context.Context, configPath string, force bool) error {
	r, err := monitorRunner(configPath)
	if err != nil {
		return err
	}
	return r.CheckResources(ctx, force)
}

// MonitorSecurity runs the security-posture check once.
func MonitorSecurity(ctx context.Context, configPath string, force bool) error {
	r, err := monitorRunner(configPath)
	if err != nil {
		return err
	}
	return r.CheckSecurity(ctx, force)
}

// MonitorReport sends the daily status report if it is due, or
// unconditionally with force set.
func MonitorReport(ctx context.Context, configPath string, force bool) error {
	r, err := monitorRunner(configPath)
	if err != nil {
		return err
	}
	return r.SendReport(ctx, force)
}

// MonitorDaemon runs the checks on their cron schedules until interrupted.
func MonitorDaemon(ctx context.Context, configPath string) error {
	r, err := monitorRunner(configPath)
	if err != nil {
		return err
	}
	return runDaemon(ctx, r)
}

// monitorRunner loads config and wires a runner. The webhook URL is
// mandatory for every monitoring path and checked before any work.
func monitorRunner(configPath string) (*monitor.Runner, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireWebhook(); err != nil {
		return nil, fmt.Errorf("monitoring needs alert delivery: %w", err)
	}
	return newRunner(cfg, newNotifier(cfg), newEnvironment()), nil
}
