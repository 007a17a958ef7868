package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func gateAt(t *testing.T, now time.Time) *ReportGate {
	t.Helper()
	g := NewReportGate(filepath.Join(t.TempDir(), "last-report-date"))
	g.Now = func() time.Time { return now }
	return g
}

func TestReportGate_DueOnceHourReached(t *testing.T) {
	t.Parallel()
	morning := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	g := gateAt(t, morning)

	due, err := g.Due(8)
	if err != nil || !due {
		t.Fatalf("Due() = (%v, %v), want (true, nil) with no state file", due, err)
	}
}

func TestReportGate_NotDueBeforeHour(t *testing.T) {
	t.Parallel()
	early := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	g := gateAt(t, early)

	due, err := g.Due(8)
	if err != nil {
		t.Fatal(err)
	}
	if due {
		t.Error("report due at 06:00 with report hour 8")
	}
}

func TestReportGate_NeverTwicePerDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	g := gateAt(t, now)

	if err := g.MarkSent(); err != nil {
		t.Fatal(err)
	}

	// Later the same day: already sent.
	g.Now = func() time.Time { return now.Add(5 * time.Hour) }
	due, err := g.Due(8)
	if err != nil {
		t.Fatal(err)
	}
	if due {
		t.Error("report due again on the same date")
	}

	// Next day: due again.
	g.Now = func() time.Time { return now.Add(24 * time.Hour) }
	due, err = g.Due(8)
	if err != nil {
		t.Fatal(err)
	}
	if !due {
		t.Error("report not due on the following date")
	}
}

func TestReportGate_MissedTickBackfillsLaterSameDay(t *testing.T) {
	t.Parallel()
	// The 08:05 cron tick was missed; the gate opens for the 14:00 run.
	afternoon := time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)
	g := gateAt(t, afternoon)

	due, err := g.Due(8)
	if err != nil || !due {
		t.Fatalf("Due() = (%v, %v), want backfill at 14:00", due, err)
	}
}

func TestReportGate_CorruptStateCountsAsNeverSent(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	g := gateAt(t, now)
	if err := os.WriteFile(g.Path, []byte("not-a-date\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	due, err := g.Due(8)
	if err != nil || !due {
		t.Fatalf("Due() = (%v, %v), want (true, nil) for corrupt state", due, err)
	}
}
