package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// wpConfig renders wp-config.php with the site credentials and fresh
// authentication salts.
type wpConfig struct{}

func (s *wpConfig) Name() string { return "wp_config" }

func (s *wpConfig) Provision(ctx *provision.Context) error {
	password := ctx.State.DatabasePassword
	if password == "" {
		// Stage ran in a fresh process after wp_database completed earlier.
		p, err := siteDBPassword(ctx)
		if err != nil {
			return err
		}
		password = p
	}

	salts := make([]string, 4)
	for i := range salts {
		salt, err := randomSecret(32)
		if err != nil {
			return err
		}
		salts[i] = salt
	}

	conf, err := render("wp-config", wpConfigTemplate, map[string]any{
		"DBName":        ctx.Config.Site.DatabaseName,
		"DBUser":        ctx.Config.Site.DatabaseUser,
		"DBPassword":    password,
		"AuthKey":       salts[0],
		"SecureAuthKey": salts[1],
		"LoggedInKey":   salts[2],
		"NonceKey":      salts[3],
	})
	if err != nil {
		return err
	}
	if err := ctx.System.WriteFile(webroot(ctx)+"/wp-config.php", conf, 0o640); err != nil {
		return fmt.Errorf("failed to write wp-config.php: %w", err)
	}
	return nil
}
