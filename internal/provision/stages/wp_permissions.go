package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// wpPermissions hands the document root to the web server user and tightens
// file modes, with wp-config.php kept unreadable to other users.
type wpPermissions struct{}

func (s *wpPermissions) Name() string { return "wp_permissions" }

func (s *wpPermissions) Provision(ctx *provision.Context) error {
	root := webroot(ctx)
	cmds := [][]string{
		{"chown", "-R", "www-data:www-data", root},
		{"find", root, "-type", "d", "-exec", "chmod", "755", "{}", ";"},
		{"find", root, "-type", "f", "-exec", "chmod", "644", "{}", ";"},
		{"chmod", "640", root + "/wp-config.php"},
	}
	for _, cmd := range cmds {
		if _, err := ctx.System.Run(ctx, cmd[0], cmd[1:]...); err != nil {
			return fmt.Errorf("%s failed: %w", cmd[0], err)
		}
	}
	return nil
}
