package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// redis installs a localhost-only cache with a bounded memory budget.
type redis struct{}

func (s *redis) Name() string { return "redis" }

func (s *redis) Provision(ctx *provision.Context) error {
	if err := installPackages(ctx, "redis-server"); err != nil {
		return fmt.Errorf("failed to install redis-server: %w", err)
	}

	conf, err := render("redis", redisConfTemplate, map[string]any{
		"MaxMemory": "256mb",
	})
	if err != nil {
		return err
	}
	if err := ctx.System.WriteFile("/etc/redis/redis.conf", conf, 0o640); err != nil {
		return fmt.Errorf("failed to write redis config: %w", err)
	}

	if err := ctx.System.EnableService(ctx, "redis-server"); err != nil {
		return fmt.Errorf("failed to enable redis: %w", err)
	}
	if err := ctx.System.RestartService(ctx, "redis-server"); err != nil {
		return fmt.Errorf("failed to restart redis: %w", err)
	}
	return nil
}
