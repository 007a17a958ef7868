package provision

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured events during a provisioning run.
type Observer interface {
	// Printf logs an unstructured progress line.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType // Type of event
	Stage     string    // Stage name (e.g. "nginx", "ssh_setup")
	Message   string    // Human-readable message
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventStageStarted indicates a stage has started running.
	EventStageStarted EventType = "stage.started"
	// EventStageSkipped indicates a stage was skipped because the ledger
	// already records it as complete.
	EventStageSkipped EventType = "stage.skipped"
	// EventStageCompleted indicates a stage completed and was recorded.
	EventStageCompleted EventType = "stage.completed"
	// EventStageFailed indicates a stage failed; no record was written.
	EventStageFailed EventType = "stage.failed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	parts := []string{string(event.Type)}
	if event.Stage != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Stage))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	log.Print(strings.Join(parts, " "))
}

// NopObserver discards all output. Useful in tests and when a TUI owns the
// terminal.
type NopObserver struct{}

// Printf implements Observer.
func (o *NopObserver) Printf(string, ...any) {}

// Event implements Observer.
func (o *NopObserver) Event(Event) {}

// logStageStart emits a stage start event.
func logStageStart(observer Observer, stage string) {
	observer.Event(Event{
		Type:    EventStageStarted,
		Stage:   stage,
		Message: "starting",
	})
}

// logStageSkipped emits a stage skip event.
func logStageSkipped(observer Observer, stage string) {
	observer.Event(Event{
		Type:    EventStageSkipped,
		Stage:   stage,
		Message: "already complete, skipping",
	})
}

// logStageComplete emits a stage completion event.
func logStageComplete(observer Observer, stage string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStageCompleted,
		Stage:   stage,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// logStageFailed emits a stage failure event.
func logStageFailed(observer Observer, stage string, err error) {
	observer.Event(Event{
		Type:    EventStageFailed,
		Stage:   stage,
		Message: fmt.Sprintf("failed: %v", err),
	})
}
