package stages

import (
	"bytes"
	"fmt"
	"text/template"
)

// render executes a config template with the given data.
func render(name, tmpl string, data any) ([]byte, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

const sshdConfigTemplate = `# Managed by provost. Local changes will be overwritten.
Port {{.Port}}
PermitRootLogin no
PasswordAuthentication no
PubkeyAuthentication yes
MaxAuthTries 3
LoginGraceTime 20
AllowUsers {{.AdminUser}}
ClientAliveInterval 300
ClientAliveCountMax 2
`

const fail2banJailTemplate = `# Managed by provost.
[sshd]
enabled = true
port = {{.Port}}
maxretry = 5
findtime = 10m
bantime = 1h
`

const nginxVhostTemplate = `# Managed by provost.
server {
    listen 80;
    listen [::]:80;
    server_name {{.Domain}};
    root {{.Root}};
    index index.php index.html;

    location / {
        try_files $uri $uri/ /index.php?$args;
    }

    location ~ \.php$ {
        include snippets/fastcgi-php.conf;
        fastcgi_pass unix:/run/php/php{{.PHPVersion}}-fpm.sock;
    }

    location ~ /\.ht {
        deny all;
    }
}
`

const redisConfTemplate = `# Managed by provost.
bind 127.0.0.1 ::1
protected-mode yes
port 6379
maxmemory {{.MaxMemory}}
maxmemory-policy allkeys-lru
`

const monitorCronTemplate = `# Managed by provost.
*/5 * * * * root {{.Binary}} monitor resources -c {{.Config}} >> /var/log/provost-monitor.log 2>&1
0 * * * * root {{.Binary}} monitor security -c {{.Config}} >> /var/log/provost-monitor.log 2>&1
5 {{.ReportHour}} * * * root {{.Binary}} monitor report -c {{.Config}} >> /var/log/provost-monitor.log 2>&1
`

const wpConfigTemplate = `<?php
// Managed by provost.
define( 'DB_NAME', '{{.DBName}}' );
define( 'DB_USER', '{{.DBUser}}' );
define( 'DB_PASSWORD', '{{.DBPassword}}' );
define( 'DB_HOST', 'localhost' );
define( 'DB_CHARSET', 'utf8mb4' );
define( 'DB_COLLATE', '' );

define( 'AUTH_KEY',         '{{.AuthKey}}' );
define( 'SECURE_AUTH_KEY',  '{{.SecureAuthKey}}' );
define( 'LOGGED_IN_KEY',    '{{.LoggedInKey}}' );
define( 'NONCE_KEY',        '{{.NonceKey}}' );

$table_prefix = 'wp_';
define( 'WP_DEBUG', false );

if ( ! defined( 'ABSPATH' ) ) {
	define( 'ABSPATH', __DIR__ . '/' );
}
require_once ABSPATH . 'wp-settings.php';
`
