package monitor

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/notify"
	"github.com/provost-sh/provost/internal/platform/system"
)

// Runner executes monitoring checks and hands their messages to the
// notifier. Delivery failures are logged but never abort a check run; a
// dead webhook must not stop the next scheduled check.
type Runner struct {
	Config    *config.Config
	Notifier  *notify.Notifier
	Resources *ResourceCollector
	Security  *SecurityCollector
	Gate      *ReportGate

	// Logf defaults to log.Printf.
	Logf func(format string, v ...any)
}

// NewRunner wires a runner with production collectors.
func NewRunner(cfg *config.Config, notifier *notify.Notifier, env system.Environment) *Runner {
	return &Runner{
		Config:    cfg,
		Notifier:  notifier,
		Resources: NewResourceCollector(),
		Security:  NewSecurityCollector(env, cfg.Monitor.AuthLogPath),
		Gate:      NewReportGate(filepath.Join(cfg.StateDir, "last-report-date")),
		Logf:      log.Printf,
	}
}

// CheckResources samples resource usage and alerts on threshold breaches.
// With force set, threshold logic is bypassed and a synthetic status
// message is sent unconditionally.
func (r *Runner) CheckResources(ctx context.Context, force bool) error {
	start := time.Now()

	usage, err := r.Resources.Collect(ctx)
	if err != nil {
		recordCheck("resources", "error", time.Since(start).Seconds())
		return fmt.Errorf("resource check failed: %w", err)
	}

	if force {
		body := fmt.Sprintf("Test message. CPU %.0f%%, Memory %.0f%%, Disk %.0f%%.",
			usage.CPUPercent, usage.MemoryPercent, usage.DiskPercent)
		r.deliver(ctx, "Monitoring test", body, notify.SeverityInfo)
		recordCheck("resources", "forced", time.Since(start).Seconds())
		return nil
	}

	report := Evaluate(usage, r.Config.Thresholds)
	if report.NeedsAlert {
		recordAlert("resources")
		r.deliver(ctx, report.Title, report.Body, report.Severity)
	}
	recordCheck("resources", "ok", time.Since(start).Seconds())
	return nil
}

// CheckSecurity inspects the SSH security posture and alerts on anomalies.
func (r *Runner) CheckSecurity(ctx context.Context, force bool) error {
	start := time.Now()

	status, err := r.Security.Collect(ctx)
	if err != nil {
		recordCheck("security", "error", time.Since(start).Seconds())
		return fmt.Errorf("security check failed: %w", err)
	}

	if force {
		body := fmt.Sprintf("Test message. %d failed SSH logins, %d banned IPs, %d listening ports.",
			status.FailedLogins, len(status.BannedIPs), len(status.ListeningPorts))
		r.deliver(ctx, "Monitoring test", body, notify.SeverityInfo)
		recordCheck("security", "forced", time.Since(start).Seconds())
		return nil
	}

	report := EvaluateSecurity(status, ExpectedPorts(r.Config))
	if report.NeedsAlert {
		recordAlert("security")
		r.deliver(ctx, report.Title, report.Body, report.Severity)
	}
	recordCheck("security", "ok", time.Since(start).Seconds())
	return nil
}

// SendReport delivers the daily status report if the gate allows it, or
// unconditionally with force set. The gate is only marked after a
// successful delivery, so a failed send is retried by the next invocation.
func (r *Runner) SendReport(ctx context.Context, force bool) error {
	start := time.Now()

	if !force {
		due, err := r.Gate.Due(r.Config.Monitor.ReportHour)
		if err != nil {
			recordCheck("report", "error", time.Since(start).Seconds())
			return err
		}
		if !due {
			recordCheck("report", "skipped", time.Since(start).Seconds())
			return nil
		}
	}

	usage, err := r.Resources.Collect(ctx)
	if err != nil {
		recordCheck("report", "error", time.Since(start).Seconds())
		return fmt.Errorf("report collection failed: %w", err)
	}
	security, err := r.Security.Collect(ctx)
	if err != nil {
		recordCheck("report", "error", time.Since(start).Seconds())
		return fmt.Errorf("report collection failed: %w", err)
	}

	title, body := StatusReport(usage, security)
	if delivered := r.deliver(ctx, title, body, notify.SeverityInfo); delivered && !force {
		if err := r.Gate.MarkSent(); err != nil {
			recordCheck("report", "error", time.Since(start).Seconds())
			return err
		}
	}
	recordCheck("report", "ok", time.Since(start).Seconds())
	return nil
}

// deliver sends one message and reports whether it was delivered.
func (r *Runner) deliver(ctx context.Context, title, body string, severity notify.Severity) bool {
	if err := r.Notifier.Send(ctx, title, body, severity); err != nil {
		r.logf("webhook delivery failed: %v", err)
		recordDelivery("failed")
		return false
	}
	recordDelivery("delivered")
	return true
}

func (r *Runner) logf(format string, v ...any) {
	if r.Logf != nil {
		r.Logf(format, v...)
		return
	}
	log.Printf(format, v...)
}
