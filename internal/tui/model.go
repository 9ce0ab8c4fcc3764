package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faintdeception/hiit-cli/internal/execute"
	"github.com/faintdeception/hiit-cli/internal/preview"
	"github.com/faintdeception/hiit-cli/internal/ui"
)

// maxLog is the number of transition lines kept under the countdown.
const maxLog = 5

// EventMsg carries an engine event into the program.
type EventMsg execute.Event

// DoneMsg signals that the engine returned.
type DoneMsg struct {
	Outcome execute.Outcome
	Err     error
}

// Model is the Bubble Tea model for a running workout.
type Model struct {
	title   string
	event   execute.Event
	started bool
	log     []string
	summary *execute.Summary

	interval progress.Model
	overall  progress.Model
	keys     KeyMap
	cancel   context.CancelFunc

	stopping bool
	done     bool
	outcome  execute.Outcome
	err      error
}

// NewModel creates a Model. cancel stops the engine's context.
func NewModel(title string, cancel context.CancelFunc) Model {
	return Model{
		title:    title,
		interval: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		overall:  progress.New(progress.WithSolidFill(primaryColor)),
		keys:     DefaultKeyMap,
		cancel:   cancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.done {
				return m, tea.Quit
			}
			// Wait for the engine to observe cancellation and report it.
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.interval.Width = w
		m.overall.Width = w
		return m, nil

	case EventMsg:
		m.apply(execute.Event(msg))
		return m, nil

	case DoneMsg:
		m.done = true
		m.outcome = msg.Outcome
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(e execute.Event) {
	m.started = true
	m.event = e

	var line string
	switch e.Kind {
	case execute.EventExerciseStart:
		line = fmt.Sprintf("Exercise %d/%d: %s", e.Exercise, e.ExercisesPerRep, e.Label)
	case execute.EventPause:
		line = fmt.Sprintf("%s (%s)", e.Label, preview.FormatDuration(e.Total))
	case execute.EventRepComplete:
		line = e.Label
	case execute.EventNextExercise:
		line = "Next up: " + e.Next
	case execute.EventRoutineComplete:
		m.summary = e.Summary
	}
	if line != "" {
		m.log = append(m.log, line)
		if len(m.log) > maxLog {
			m.log = m.log[len(m.log)-maxLog:]
		}
	}
}

// Outcome returns how the engine finished, once DoneMsg has arrived.
func (m Model) Outcome() (execute.Outcome, error) {
	return m.outcome, m.err
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	switch {
	case m.done && m.err != nil:
		b.WriteString(WarningStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	case m.done && m.outcome == execute.Cancelled:
		b.WriteString(WarningStyle.Render("Workout cancelled"))
		b.WriteString("\n")
		return b.String()
	case m.done && m.summary != nil:
		b.WriteString(SuccessStyle.Render("Workout complete!"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Active time: %s\n", preview.FormatDuration(m.summary.ActiveSeconds))
		fmt.Fprintf(&b, "Sets:        %d\n", m.summary.TotalSets)
		if m.summary.Message != "" {
			b.WriteString(TitleStyle.Render(m.summary.Message))
			b.WriteString("\n")
		}
		return b.String()
	case !m.started:
		b.WriteString(DimStyle.Render("Starting..."))
		b.WriteString("\n")
		return b.String()
	}

	e := m.event
	style := RestStyle
	if e.Phase == execute.PhaseActive {
		style = ActiveStyle
	}
	if e.Final {
		style = FinalStyle
	}

	b.WriteString(BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		style.Render(fmt.Sprintf("%s  %s", strings.ToUpper(e.Phase.String()), e.Label)),
		style.Render(ui.Clock(e.Remaining)),
		m.interval.ViewAs(e.Elapsed),
	)))
	b.WriteString("\n")

	var pos []string
	if e.TotalReps > 1 {
		pos = append(pos, fmt.Sprintf("Rep %d/%d", e.Rep, e.TotalReps))
	}
	if e.Exercise > 0 {
		pos = append(pos, fmt.Sprintf("Exercise %d/%d", e.Exercise, e.ExercisesPerRep))
	}
	if e.Set > 0 {
		pos = append(pos, fmt.Sprintf("Set %d/%d", e.Set, e.TotalSets))
	}
	if len(pos) > 0 {
		b.WriteString(strings.Join(pos, "  "))
		b.WriteString("\n")
	}
	if e.ShowOverall {
		b.WriteString(m.overall.ViewAs(e.Overall))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, l := range m.log {
		b.WriteString(DimStyle.Render(l))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.stopping {
		b.WriteString(WarningStyle.Render("Stopping..."))
	} else {
		b.WriteString(DimStyle.Render(fmt.Sprintf("%s %s", m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)))
	}
	b.WriteString("\n")
	return b.String()
}
