package stages

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/provost-sh/provost/internal/provision"
)

// wpDatabase creates the site database and its user. The generated password
// is persisted under the state dir so re-runs and later stages see the same
// credentials.
type wpDatabase struct{}

func (s *wpDatabase) Name() string { return "wp_database" }

func (s *wpDatabase) Provision(ctx *provision.Context) error {
	password, err := siteDBPassword(ctx)
	if err != nil {
		return err
	}
	ctx.State.DatabasePassword = password

	name := ctx.Config.Site.DatabaseName
	user := ctx.Config.Site.DatabaseUser
	stmts := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci;", name),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'localhost' IDENTIFIED BY '%s';", user, password),
		fmt.Sprintf("ALTER USER '%s'@'localhost' IDENTIFIED BY '%s';", user, password),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'localhost';", name, user),
		"FLUSH PRIVILEGES;",
	}
	for _, stmt := range stmts {
		if _, err := ctx.System.Run(ctx, "mysql", "-e", stmt); err != nil {
			return fmt.Errorf("failed to provision database %s: %w", name, err)
		}
	}
	return nil
}

// siteDBPassword loads the persisted site database password, generating and
// persisting a new one on first use.
func siteDBPassword(ctx *provision.Context) (string, error) {
	path := filepath.Join(ctx.Config.StateDir, "db-password")
	if ctx.System.FileExists(path) {
		data, err := ctx.System.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read persisted database password: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	password, err := randomSecret(16)
	if err != nil {
		return "", err
	}
	if err := ctx.System.WriteFile(path, []byte(password+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist database password: %w", err)
	}
	return password, nil
}
