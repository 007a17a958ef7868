// Package prerequisites provides utilities for checking host tools before
// provisioning or monitoring runs.
package prerequisites

import (
	"fmt"
	"strings"

	"github.com/provost-sh/provost/internal/platform/system"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// SetupTools returns the tools the provisioning pipeline depends on.
// apt-get and systemctl have no fallback; everything else is installed by
// the pipeline itself.
func SetupTools() []Tool {
	return []Tool{
		{Name: "apt-get", Required: true, Description: "Required for installing OS packages"},
		{Name: "systemctl", Required: true, Description: "Required for managing services"},
		{Name: "curl", Required: false, Description: "Installed by the base_packages stage if missing"},
	}
}

// MonitorTools returns the tools the monitoring checks use.
func MonitorTools() []Tool {
	return []Tool{
		{Name: "fail2ban-client", Required: false, Description: "Banned-IP counts in the security check"},
		{Name: "ss", Required: false, Description: "Listening-socket snapshot in the security check"},
	}
}

// InstalledServices returns tools whose presence indicates a completed
// provisioning run; all optional, reported by doctor for orientation.
func InstalledServices() []Tool {
	return []Tool{
		{Name: "nginx", Required: false, Description: "Web server"},
		{Name: "mysql", Required: false, Description: "Database server"},
		{Name: "redis-server", Required: false, Description: "Object cache"},
		{Name: "ufw", Required: false, Description: "Firewall"},
		{Name: "cloudflared", Required: false, Description: "Tunnel agent"},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.Description))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available on the host.
func Check(env system.Environment, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := env.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckAll checks every tool group: setup, monitoring and installed
// services.
func CheckAll(env system.Environment) *CheckResults {
	var all []Tool
	all = append(all, SetupTools()...)
	all = append(all, MonitorTools()...)
	all = append(all, InstalledServices()...)
	return Check(env, all)
}
