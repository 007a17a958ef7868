package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// php installs the configured PHP-FPM series with the extensions WordPress
// needs.
type php struct{}

func (s *php) Name() string { return "php" }

func (s *php) Provision(ctx *provision.Context) error {
	v := ctx.Config.Site.PHPVersion
	pkgs := []string{
		"php" + v + "-fpm",
		"php" + v + "-mysql",
		"php" + v + "-curl",
		"php" + v + "-gd",
		"php" + v + "-mbstring",
		"php" + v + "-xml",
		"php" + v + "-zip",
		"php" + v + "-intl",
	}
	if err := installPackages(ctx, pkgs...); err != nil {
		return fmt.Errorf("failed to install PHP %s: %w", v, err)
	}
	if err := ctx.System.EnableService(ctx, "php"+v+"-fpm"); err != nil {
		return fmt.Errorf("failed to enable php-fpm: %w", err)
	}
	return nil
}
