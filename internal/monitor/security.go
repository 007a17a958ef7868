package monitor

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/notify"
	"github.com/provost-sh/provost/internal/platform/system"
)

// failedLoginLimit is how many failed SSH logins in the auth log trigger an
// alert.
const failedLoginLimit = 20

// SecurityStatus is a snapshot of the host's SSH security posture.
type SecurityStatus struct {
	// FailedLogins counts "Failed password" lines in the auth log.
	FailedLogins int

	// BannedIPs are the addresses currently banned by the sshd jail.
	BannedIPs []string

	// ListeningPorts are the TCP ports with a listening socket, sorted.
	ListeningPorts []int
}

// SecurityCollector inspects the auth log and the fail2ban sshd jail.
type SecurityCollector struct {
	Env         system.Environment
	AuthLogPath string
}

// NewSecurityCollector creates a collector for the given auth log.
func NewSecurityCollector(env system.Environment, authLogPath string) *SecurityCollector {
	return &SecurityCollector{Env: env, AuthLogPath: authLogPath}
}

// Collect gathers the current security status. A missing fail2ban is not an
// error; the banned list is simply empty.
func (c *SecurityCollector) Collect(ctx context.Context) (SecurityStatus, error) {
	var status SecurityStatus

	data, err := c.Env.ReadFile(c.AuthLogPath)
	if err != nil {
		return status, fmt.Errorf("failed to read auth log %s: %w", c.AuthLogPath, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, "Failed password") {
			status.FailedLogins++
		}
	}

	if _, err := c.Env.LookPath("fail2ban-client"); err == nil {
		out, err := c.Env.Run(ctx, "fail2ban-client", "status", "sshd")
		if err != nil {
			return status, fmt.Errorf("fail2ban-client failed: %w", err)
		}
		status.BannedIPs = parseBannedIPs(out)
	}

	if _, err := c.Env.LookPath("ss"); err == nil {
		out, err := c.Env.Run(ctx, "ss", "-tlnH")
		if err != nil {
			return status, fmt.Errorf("listening socket snapshot failed: %w", err)
		}
		status.ListeningPorts = parseListeningPorts(out)
	}
	return status, nil
}

// parseListeningPorts extracts the local ports from `ss -tlnH` output:
// one socket per line, local address in the fourth column, port after the
// last colon (v6 addresses contain colons of their own).
func parseListeningPorts(out string) []int {
	seen := make(map[int]bool)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		local := fields[3]
		idx := strings.LastIndex(local, ":")
		if idx < 0 {
			continue
		}
		port, err := strconv.Atoi(local[idx+1:])
		if err != nil || port < 1 || port > 65535 {
			continue
		}
		seen[port] = true
	}

	if len(seen) == 0 {
		return nil
	}
	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}

// ExpectedPorts lists the TCP ports the provisioned stack legitimately
// listens on: sshd, nginx (http/https), mysql and redis on loopback.
func ExpectedPorts(cfg *config.Config) []int {
	return []int{cfg.Server.SSHPort, 80, 443, 3306, 6379}
}

// parseBannedIPs extracts the banned address list from `fail2ban-client
// status sshd` output.
func parseBannedIPs(out string) []string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Banned IP list:") {
			continue
		}
		_, list, _ := strings.Cut(line, "Banned IP list:")
		return strings.Fields(list)
	}
	return nil
}

// EvaluateSecurity turns a security snapshot into at most one alert.
// expectedPorts is the listening baseline; any other listening port is
// reported as drift. A login flood is critical, drift and bans warn.
func EvaluateSecurity(status SecurityStatus, expectedPorts []int) *Report {
	var lines []string
	if status.FailedLogins > failedLoginLimit {
		lines = append(lines, fmt.Sprintf("%d failed SSH logins (limit %d)",
			status.FailedLogins, failedLoginLimit))
	}
	if n := len(status.BannedIPs); n > 0 {
		lines = append(lines, fmt.Sprintf("%d banned IPs: %s",
			n, strings.Join(status.BannedIPs, ", ")))
	}
	if drift := portDrift(status.ListeningPorts, expectedPorts); len(drift) > 0 {
		lines = append(lines, fmt.Sprintf("unexpected listening ports: %s",
			joinPorts(drift)))
	}

	if len(lines) == 0 {
		return &Report{}
	}
	severity := notify.SeverityWarn
	if status.FailedLogins > failedLoginLimit {
		severity = notify.SeverityCritical
	}
	return &Report{
		NeedsAlert: true,
		Title:      "Security alert",
		Body:       strings.Join(lines, "\n"),
		Severity:   severity,
	}
}

// portDrift returns the listening ports absent from the expected baseline.
func portDrift(listening, expected []int) []int {
	allowed := make(map[int]bool, len(expected))
	for _, p := range expected {
		allowed[p] = true
	}
	var drift []int
	for _, p := range listening {
		if !allowed[p] {
			drift = append(drift, p)
		}
	}
	return drift
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
