package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// webroot returns the document root for the configured domain.
func webroot(ctx *provision.Context) string {
	return "/var/www/" + ctx.Config.Site.Domain
}

// wpDownload fetches the latest WordPress release and unpacks it into the
// site's document root. An existing install is left untouched.
type wpDownload struct{}

func (s *wpDownload) Name() string { return "wp_download" }

func (s *wpDownload) Provision(ctx *provision.Context) error {
	root := webroot(ctx)
	if ctx.System.FileExists(root + "/wp-settings.php") {
		ctx.Observer.Printf("WordPress already present at %s", root)
		return nil
	}

	const archive = "/tmp/wordpress.tar.gz"
	if _, err := ctx.System.Run(ctx, "curl", "-fsSL", "-o", archive, "https://wordpress.org/latest.tar.gz"); err != nil {
		return fmt.Errorf("failed to download WordPress: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "tar", "-xzf", archive, "-C", "/tmp"); err != nil {
		return fmt.Errorf("failed to unpack WordPress: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "mkdir", "-p", root); err != nil {
		return fmt.Errorf("failed to create %s: %w", root, err)
	}
	if _, err := ctx.System.Run(ctx, "cp", "-a", "/tmp/wordpress/.", root); err != nil {
		return fmt.Errorf("failed to install WordPress files: %w", err)
	}
	if _, err := ctx.System.Run(ctx, "rm", "-rf", "/tmp/wordpress", archive); err != nil {
		return fmt.Errorf("failed to clean up download: %w", err)
	}
	return nil
}
