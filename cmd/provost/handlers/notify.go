package handlers

import (
	"context"
	"fmt"

	"github.com/provost-sh/provost/internal/notify"
)

// Notify sends a one-off message through the configured webhook. Used for
// operator verification and by external scripts.
func Notify(ctx context.Context, configPath, title, body, severityName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireWebhook(); err != nil {
		return err
	}

	severity, err := notify.ParseSeverity(severityName)
	if err != nil {
		return err
	}

	if err := newNotifier(cfg).Send(ctx, title, body, severity); err != nil {
		return fmt.Errorf("delivery failed: %w", err)
	}
	fmt.Println("Message delivered.")
	return nil
}
