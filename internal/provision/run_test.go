package provision

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/ledger"
	"github.com/provost-sh/provost/internal/platform/system"
)

// fakeStage counts executions and optionally fails.
type fakeStage struct {
	name string
	runs int
	err  error
}

func (s *fakeStage) Name() string { return s.name }

func (s *fakeStage) Provision(*Context) error {
	s.runs++
	return s.err
}

// recordingObserver captures event types per stage.
type recordingObserver struct {
	events []Event
}

func (o *recordingObserver) Printf(string, ...any) {}
func (o *recordingObserver) Event(e Event)         { o.events = append(o.events, e) }

func (o *recordingObserver) typesFor(stage string) []EventType {
	var types []EventType
	for _, e := range o.events {
		if e.Stage == stage {
			types = append(types, e.Type)
		}
	}
	return types
}

func newTestContext(led ledger.Ledger) (*Context, *recordingObserver) {
	obs := &recordingObserver{}
	ctx := NewContext(context.Background(), config.Default(), system.NewMockEnvironment(), led)
	ctx.Observer = obs
	return ctx, obs
}

func TestRun_ExecutesAllStagesInOrder(t *testing.T) {
	t.Parallel()
	led := ledger.NewMemoryLedger()
	ctx, _ := newTestContext(led)

	a := &fakeStage{name: "a"}
	b := &fakeStage{name: "b"}

	if err := Run(ctx, []Stage{a, b}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if a.runs != 1 || b.runs != 1 {
		t.Errorf("runs = (%d, %d), want (1, 1)", a.runs, b.runs)
	}

	names, _ := led.Completed()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ledger = %v, want [a b]", names)
	}
}

func TestRun_SecondRunSkips(t *testing.T) {
	t.Parallel()
	led := ledger.NewMemoryLedger()
	stage := &fakeStage{name: "nginx"}

	for i := 0; i < 2; i++ {
		ctx, _ := newTestContext(led)
		if err := Run(ctx, []Stage{stage}); err != nil {
			t.Fatalf("Run() %d error: %v", i, err)
		}
	}

	if stage.runs != 1 {
		t.Errorf("stage ran %d times across two invocations, want 1", stage.runs)
	}
}

func TestRun_FailureLeavesStageUnrecorded(t *testing.T) {
	t.Parallel()
	led := ledger.NewMemoryLedger()
	ctx, obs := newTestContext(led)

	ok := &fakeStage{name: "ok"}
	boom := &fakeStage{name: "boom", err: errors.New("exploded")}
	after := &fakeStage{name: "after"}

	err := Run(ctx, []Stage{ok, boom, after})
	if err == nil {
		t.Fatal("Run() = nil, want error")
	}
	if !errors.Is(err, boom.err) {
		t.Errorf("error %v should wrap the stage error", err)
	}

	// Fail-fast: later stages never ran.
	if after.runs != 0 {
		t.Errorf("stage after the failure ran %d times, want 0", after.runs)
	}

	// The completed stage is recorded, the failed one is not.
	done, _ := led.IsComplete("ok")
	if !done {
		t.Error("ok stage should be recorded")
	}
	done, _ = led.IsComplete("boom")
	if done {
		t.Error("failed stage must not be recorded")
	}

	// A re-run retries the failed stage.
	boom.err = nil
	ctx2, _ := newTestContext(led)
	if err := Run(ctx2, []Stage{ok, boom, after}); err != nil {
		t.Fatalf("re-run error: %v", err)
	}
	if ok.runs != 1 {
		t.Errorf("ok ran %d times, want 1 (skipped on re-run)", ok.runs)
	}
	if boom.runs != 2 {
		t.Errorf("boom ran %d times, want 2 (retried whole stage)", boom.runs)
	}

	types := obs.typesFor("boom")
	if len(types) != 2 || types[0] != EventStageStarted || types[1] != EventStageFailed {
		t.Errorf("boom events = %v", types)
	}
}

func TestRun_EmitsSkipEvents(t *testing.T) {
	t.Parallel()
	led := ledger.NewMemoryLedger()
	if err := led.MarkComplete("done-before"); err != nil {
		t.Fatal(err)
	}

	ctx, obs := newTestContext(led)
	stage := &fakeStage{name: "done-before"}
	if err := Run(ctx, []Stage{stage}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stage.runs != 0 {
		t.Errorf("recorded stage ran %d times, want 0", stage.runs)
	}

	types := obs.typesFor("done-before")
	if len(types) != 1 || types[0] != EventStageSkipped {
		t.Errorf("events = %v, want [stage.skipped]", types)
	}
}

// blockingStage waits for its context and reports the context error.
type blockingStage struct{}

func (s *blockingStage) Name() string { return "blocking" }

func (s *blockingStage) Provision(ctx *Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRun_StageTimeoutBoundsEachStage(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(ledger.NewMemoryLedger())
	ctx.Timeouts.Stage = 10 * time.Millisecond

	err := Run(ctx, []Stage{&blockingStage{}})
	if err == nil {
		t.Fatal("Run() = nil, want timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error %v should wrap context.DeadlineExceeded", err)
	}

	done, _ := ctx.Ledger.IsComplete("blocking")
	if done {
		t.Error("timed-out stage must not be recorded")
	}
}

func TestRun_CanceledContextStopsAtStageBoundary(t *testing.T) {
	t.Parallel()
	led := ledger.NewMemoryLedger()
	obs := &recordingObserver{}
	base, cancel := context.WithCancel(context.Background())
	cancel()

	ctx := NewContext(base, config.Default(), system.NewMockEnvironment(), led)
	ctx.Observer = obs
	stage := &fakeStage{name: "never"}

	err := Run(ctx, []Stage{stage})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if stage.runs != 0 {
		t.Errorf("stage ran %d times after cancellation, want 0", stage.runs)
	}
}

// failingLedger simulates ledger I/O problems.
type failingLedger struct {
	lookupErr error
	markErr   error
}

func (l *failingLedger) IsComplete(string) (bool, error) { return false, l.lookupErr }
func (l *failingLedger) MarkComplete(string) error       { return l.markErr }
func (l *failingLedger) Completed() ([]string, error)    { return nil, nil }

func TestRun_LedgerErrorsAreFatal(t *testing.T) {
	t.Parallel()

	t.Run("lookup error", func(t *testing.T) {
		t.Parallel()
		led := &failingLedger{lookupErr: fmt.Errorf("disk gone")}
		ctx, _ := newTestContext(led)
		stage := &fakeStage{name: "x"}

		if err := Run(ctx, []Stage{stage}); err == nil {
			t.Fatal("Run() = nil, want ledger lookup error")
		}
		if stage.runs != 0 {
			t.Error("stage must not run when completion state is unknown")
		}
	})

	t.Run("mark error", func(t *testing.T) {
		t.Parallel()
		led := &failingLedger{markErr: fmt.Errorf("read-only fs")}
		ctx, _ := newTestContext(led)

		err := Run(ctx, []Stage{&fakeStage{name: "x"}})
		if err == nil {
			t.Fatal("Run() = nil, want ledger write error")
		}
	})
}

func TestRun_EndToEndWithFileLedger(t *testing.T) {
	t.Parallel()
	path := t.TempDir() + "/setup.ledger"
	stage := &fakeStage{name: "X"}

	// First invocation: store absent, stage runs.
	ctx, _ := newTestContext(ledger.NewFileLedger(path))
	if err := Run(ctx, []Stage{stage}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	done, err := ledger.NewFileLedger(path).IsComplete("X")
	if err != nil || !done {
		t.Fatalf("IsComplete(X) = (%v, %v), want (true, nil)", done, err)
	}

	// Fresh context and ledger instance: simulates a process restart.
	ctx2, _ := newTestContext(ledger.NewFileLedger(path))
	if err := Run(ctx2, []Stage{stage}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stage.runs != 1 {
		t.Errorf("stage produced a side effect %d times, want exactly 1", stage.runs)
	}
}
