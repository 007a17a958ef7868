package stages

import (
	"fmt"

	"github.com/provost-sh/provost/internal/provision"
)

// mysql installs the database server and applies the basic lockdown the
// interactive mysql_secure_installation script would: drop anonymous users
// and the test database, keep root on socket auth only.
type mysql struct{}

func (s *mysql) Name() string { return "mysql" }

func (s *mysql) Provision(ctx *provision.Context) error {
	if err := installPackages(ctx, "mysql-server"); err != nil {
		return fmt.Errorf("failed to install mysql-server: %w", err)
	}
	if err := ctx.System.EnableService(ctx, "mysql"); err != nil {
		return fmt.Errorf("failed to enable mysql: %w", err)
	}

	lockdown := []string{
		"DELETE FROM mysql.user WHERE User='';",
		"DROP DATABASE IF EXISTS test;",
		"DELETE FROM mysql.db WHERE Db='test' OR Db='test\\_%';",
		"FLUSH PRIVILEGES;",
	}
	for _, stmt := range lockdown {
		if _, err := ctx.System.Run(ctx, "mysql", "-e", stmt); err != nil {
			return fmt.Errorf("mysql lockdown statement failed: %w", err)
		}
	}
	return nil
}
