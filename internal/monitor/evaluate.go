package monitor

import (
	"fmt"
	"strings"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/notify"
)

// Report is the outcome of one check: at most one message per invocation.
type Report struct {
	// NeedsAlert is true when the message should be delivered.
	NeedsAlert bool

	Title    string
	Body     string
	Severity notify.Severity
}

// Evaluate compares a usage snapshot against the configured thresholds.
// Breaches of several resources fold into a single alert; each line names
// both the observed value and the threshold it crossed.
func Evaluate(usage Usage, th config.Thresholds) *Report {
	type metric struct {
		name      string
		observed  float64
		threshold int
	}
	metrics := []metric{
		{"CPU", usage.CPUPercent, th.CPUPercent},
		{"Memory", usage.MemoryPercent, th.MemoryPercent},
		{"Disk", usage.DiskPercent, th.DiskPercent},
	}

	var lines []string
	for _, m := range metrics {
		if m.observed > float64(m.threshold) {
			lines = append(lines, fmt.Sprintf("%s usage %.0f%% exceeds threshold %d%%",
				m.name, m.observed, m.threshold))
		}
	}

	if len(lines) == 0 {
		return &Report{}
	}
	return &Report{
		NeedsAlert: true,
		Title:      "Resource alert",
		Body:       strings.Join(lines, "\n"),
		Severity:   notify.SeverityCritical,
	}
}
