// internal/tui/spinner.go

// Package tui holds the small Bubble Tea views used by the CLI.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// taskDoneMsg carries the result of the wrapped call back into Update.
type taskDoneMsg struct {
	result any
	err    error
}

// spinnerModel shows a spinner until the wrapped task finishes or the user
// cancels with q, esc or ctrl+c.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	task    func(ctx context.Context) (any, error)
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time

	done   bool
	result any
	err    error
}

func newSpinnerModel(ctx context.Context, label string, task func(ctx context.Context) (any, error)) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ctx, cancel := context.WithCancel(ctx)
	return &spinnerModel{
		spinner: s,
		label:   label,
		task:    task,
		ctx:     ctx,
		cancel:  cancel,
		started: time.Now(),
	}
}

// Init starts the spinner and the task.
func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m *spinnerModel) run() tea.Msg {
	result, err := m.task(m.ctx)
	return taskDoneMsg{result: result, err: err}
}

// Update handles task completion, cancellation keys and spinner ticks.
func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.result, m.err = msg.result, msg.err
		m.cancel()
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the spinner line, or nothing once the task is done.
func (m *spinnerModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	return fmt.Sprintf("%s %s %s\n", m.spinner.View(), labelStyle.Render(m.label), elapsedStyle.Render(elapsed.String()))
}

// RunWithSpinner runs task while rendering a spinner to out. Cancelling from
// the keyboard cancels the context passed to task.
func RunWithSpinner[T any](ctx context.Context, out io.Writer, label string, task func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	m := newSpinnerModel(ctx, label, func(ctx context.Context) (any, error) {
		return task(ctx)
	})
	defer m.cancel()

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out)).Run()
	if err != nil {
		return zero, fmt.Errorf("run spinner: %w", err)
	}
	fm, ok := final.(*spinnerModel)
	if !ok {
		return zero, fmt.Errorf("run spinner: unexpected model %T", final)
	}
	if fm.err != nil {
		return zero, fm.err
	}
	result, _ := fm.result.(T)
	return result, nil
}
