package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dateLayout is how the gate persists the last report date.
const dateLayout = "2006-01-02"

// ReportGate decides whether the daily status report is due. It persists
// the last report date and compares calendar dates, so a missed tick is
// made up by the next invocation on the same day, and the report is never
// sent twice for one date.
type ReportGate struct {
	// Path is the state file holding the last report date.
	Path string

	// Now is swapped out in tests.
	Now func() time.Time
}

// NewReportGate creates a gate backed by the given state file.
func NewReportGate(path string) *ReportGate {
	return &ReportGate{Path: path, Now: time.Now}
}

// Due reports whether the daily report should be sent now: the local hour
// has reached reportHour and no report was recorded for today's date. A
// missing or unreadable-as-date state file counts as never-sent.
func (g *ReportGate) Due(reportHour int) (bool, error) {
	now := g.Now()
	if now.Hour() < reportHour {
		return false, nil
	}

	data, err := os.ReadFile(g.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read report state: %w", err)
	}

	last, err := time.ParseInLocation(dateLayout, strings.TrimSpace(string(data)), now.Location())
	if err != nil {
		// Corrupt state file: treat as never-sent rather than silencing
		// the report forever.
		return true, nil
	}
	return last.Format(dateLayout) != now.Format(dateLayout), nil
}

// MarkSent records today's date as reported.
func (g *ReportGate) MarkSent() error {
	if err := os.MkdirAll(filepath.Dir(g.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create report state dir: %w", err)
	}
	date := g.Now().Format(dateLayout)
	if err := os.WriteFile(g.Path, []byte(date+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write report state: %w", err)
	}
	return nil
}

// StatusReport builds the daily status message from the latest snapshots.
func StatusReport(usage Usage, security SecurityStatus) (title, body string) {
	body = fmt.Sprintf(
		"CPU %.0f%%, Memory %.0f%%, Disk %.0f%%\n%d failed SSH logins, %d banned IPs, %d listening ports\nAll checks nominal.",
		usage.CPUPercent, usage.MemoryPercent, usage.DiskPercent,
		security.FailedLogins, len(security.BannedIPs), len(security.ListeningPorts))
	return "Daily status report", body
}
