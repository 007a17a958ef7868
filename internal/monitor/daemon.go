package monitor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

// Daemon runs the monitoring checks on their configured cron schedules and
// serves Prometheus metrics. It is an alternative to the cron.d entries for
// hosts that prefer a long-running process under systemd.
type Daemon struct {
	runner *Runner
}

// NewDaemon creates a daemon around the given runner.
func NewDaemon(runner *Runner) *Daemon {
	return &Daemon{runner: runner}
}

// Run schedules the checks and blocks until ctx is cancelled. The report
// check rides on the resources schedule; its own gate decides when the
// report actually goes out.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.runner.Config
	c := cron.New()

	_, err := c.AddFunc(cfg.Monitor.ResourcesSchedule, func() {
		if err := d.runner.CheckResources(ctx, false); err != nil {
			d.runner.logf("resources check: %v", err)
		}
		if err := d.runner.SendReport(ctx, false); err != nil {
			d.runner.logf("daily report: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid resources schedule: %w", err)
	}

	_, err = c.AddFunc(cfg.Monitor.SecuritySchedule, func() {
		if err := d.runner.CheckSecurity(ctx, false); err != nil {
			d.runner.logf("security check: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid security schedule: %w", err)
	}

	var srv *http.Server
	errCh := make(chan error, 1)
	if addr := cfg.Monitor.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(newRegistry(), promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		d.runner.logf("metrics listening on %s", addr)
	}

	c.Start()
	d.runner.logf("monitor daemon started (resources %q, security %q)",
		cfg.Monitor.ResourcesSchedule, cfg.Monitor.SecuritySchedule)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		stopCron(c)
		return fmt.Errorf("metrics server failed: %w", err)
	}

	stopCron(c)
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}

// stopCron stops the scheduler and waits for in-flight jobs.
func stopCron(c *cron.Cron) {
	<-c.Stop().Done()
}
