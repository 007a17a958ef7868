// Package tui provides a Bubble Tea progress view for provisioning runs.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/provost-sh/provost/internal/provision"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).MarginTop(1)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	skipMark  = "[--]"
	pending   = "[  ]"
)

var spinnerFrames = []string{"[|  ]", "[ | ]", "[  |]", "[ | ]"}

// stageState mirrors the runner's event vocabulary for display.
type stageState int

const (
	statePending stageState = iota
	stateActive
	stateDone
	stateSkipped
	stateFailed
)

// StageEventMsg carries a provisioning event into the model.
type StageEventMsg struct {
	Event provision.Event
}

// ErrMsg carries a fatal run error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the run finished.
type DoneMsg struct{}

// TickMsg advances the spinner.
type TickMsg struct{}

type stageRow struct {
	name  string
	state stageState
}

// Model is the Bubble Tea model for a provisioning run.
type Model struct {
	Title  string
	stages []stageRow

	SpinnerFrame int
	StartTime    time.Time
	Err          error
	Done         bool

	// Aborted is set when the user quits mid-run. The program keeps
	// running until the pipeline reports back, so the view can show that
	// the current stage is being waited out.
	Aborted bool

	// cancel stops the pipeline context on user quit.
	cancel context.CancelFunc
}

// NewModel creates a model listing the given stages as pending.
func NewModel(title string, stageNames []string) Model {
	rows := make([]stageRow, len(stageNames))
	for i, name := range stageNames {
		rows[i] = stageRow{name: name}
	}
	return Model{Title: title, stages: rows, StartTime: time.Now()}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Cancel the run; the program exits when the pipeline
			// reports back.
			m.Aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case StageEventMsg:
		m.applyEvent(msg.Event)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyEvent(e provision.Event) {
	for i := range m.stages {
		if m.stages[i].name != e.Stage {
			continue
		}
		switch e.Type {
		case provision.EventStageStarted:
			m.stages[i].state = stateActive
		case provision.EventStageSkipped:
			m.stages[i].state = stateSkipped
		case provision.EventStageCompleted:
			m.stages[i].state = stateDone
		case provision.EventStageFailed:
			m.stages[i].state = stateFailed
		}
		return
	}
}

// View implements tea.Model.
func (m Model) View() string {
	s := titleStyle.Render(m.Title) + "\n\n"

	for _, row := range m.stages {
		var mark, name string
		switch row.state {
		case stateDone:
			mark, name = doneStyle.Render(checkMark), row.name
		case stateSkipped:
			mark, name = dimStyle.Render(skipMark), dimStyle.Render(row.name+" (already done)")
		case stateFailed:
			mark, name = failedStyle.Render(crossMark), failedStyle.Render(row.name)
		case stateActive:
			mark = spinnerFrames[m.SpinnerFrame%len(spinnerFrames)]
			name = activeStyle.Render(row.name)
		default:
			mark, name = dimStyle.Render(pending), dimStyle.Render(row.name)
		}
		s += fmt.Sprintf("  %s %s\n", mark, name)
	}

	elapsed := time.Since(m.StartTime).Round(time.Second)
	footer := fmt.Sprintf("elapsed %v * q to abort", elapsed)
	if m.Aborted {
		footer = fmt.Sprintf("elapsed %v * aborting, waiting for the current stage", elapsed)
	}
	s += footerStyle.Render(footer) + "\n"
	return s
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// programObserver forwards provisioning events into a running program.
type programObserver struct {
	p *tea.Program
}

// Printf implements provision.Observer. Progress lines are dropped; the
// stage list already shows them.
func (o *programObserver) Printf(string, ...any) {}

// Event implements provision.Observer.
func (o *programObserver) Event(e provision.Event) {
	o.p.Send(StageEventMsg{Event: e})
}

// Run wraps a provisioning run with the progress view. runFn executes the
// pipeline under the given context and observer and returns its error.
// When the user quits mid-run the context is canceled, the pipeline stops
// at the next stage boundary, and its error is returned.
func Run(ctx context.Context, title string, stageNames []string, runFn func(context.Context, provision.Observer) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(title, stageNames)
	m.cancel = cancel
	p := tea.NewProgram(m)

	go func() {
		if err := runFn(runCtx, &programObserver{p: p}); err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	if fm.Aborted && !fm.Done {
		return fmt.Errorf("provisioning aborted")
	}
	return nil
}
