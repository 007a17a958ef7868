package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// basePackages installs the tools every later stage assumes are present.
type basePackages struct{}

func (s *basePackages) Name() string { return "base_packages" }

func (s *basePackages) Provision(ctx *provision.Context) error {
	pkgs := []string{
		"curl",
		"wget",
		"git",
		"unzip",
		"ufw",
		"fail2ban",
		"cron",
		"software-properties-common",
	}
	if err := installPackages(ctx, pkgs...); err != nil {
		return fmt.Errorf("failed to install base packages: %w", err)
	}
	return nil
}
