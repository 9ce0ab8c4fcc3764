// Package ui provides terminal UI components for hiit.
// This file implements the line renderer used for plain (non-interactive) runs.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/faintdeception/hiit-cli/internal/execute"
	"github.com/faintdeception/hiit-cli/internal/preview"
)

// barWidth is the number of cells in the countdown bar.
const barWidth = 20

// Options control how a Printer renders.
type Options struct {
	Color bool
	Emoji bool
	// TTY rewrites the countdown line in place. Without it only
	// transitions and final-second ticks are printed.
	TTY bool
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Printer renders engine events as text lines. It implements execute.Reporter.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	opts    Options
	styles  styles
	title   cases.Caser
	onLine  bool // a TTY countdown line is open
	lastSet string
}

type styles struct {
	header lipgloss.Style
	active lipgloss.Style
	rest   lipgloss.Style
	final  lipgloss.Style
	dim    lipgloss.Style
	done   lipgloss.Style
	warn   lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{
		w:      w,
		opts:   opts,
		styles: newStyles(w, opts.Color),
		title:  cases.Title(language.English),
	}
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		active: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		rest:   r.NewStyle().Foreground(lipgloss.Color("14")),
		final:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		done:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Report implements execute.Reporter.
func (p *Printer) Report(e execute.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case execute.EventRoutineStart:
		line := fmt.Sprintf("%s %s", p.icon("start"), e.Routine)
		if e.TotalReps > 1 {
			line += fmt.Sprintf(" (%d reps)", e.TotalReps)
		}
		p.println(p.styles.header.Render(line))
	case execute.EventRepStart:
		if e.TotalReps > 1 {
			p.println(p.styles.header.Render(fmt.Sprintf("=== %s ===", e.Label)))
		}
	case execute.EventExerciseStart:
		p.println(fmt.Sprintf("%s Exercise %d/%d: %s", p.icon("exercise"), e.Exercise, e.ExercisesPerRep,
			p.styles.active.Render(e.Label)))
	case execute.EventSetReady:
		p.println(p.styles.dim.Render(fmt.Sprintf("  Set %d/%d (%s)", e.Set, e.TotalSets, preview.FormatDuration(e.Total))))
	case execute.EventTick:
		p.tick(e)
	case execute.EventIntervalDone:
		p.endLine()
		if !p.opts.TTY {
			p.println(fmt.Sprintf("  %s done", e.Label))
		}
	case execute.EventPause:
		p.println(p.styles.rest.Render(fmt.Sprintf("%s %s (%s)", p.icon("pause"), e.Label, preview.FormatDuration(e.Total))))
	case execute.EventNextExercise:
		p.println(p.styles.dim.Render(fmt.Sprintf("  Next up: %s", e.Next)))
	case execute.EventRepComplete:
		p.println(p.styles.done.Render(fmt.Sprintf("%s %s", p.icon("rep"), e.Label)))
	case execute.EventRoutineComplete:
		p.summary(e)
	case execute.EventCancelled:
		p.println(p.styles.warn.Render(fmt.Sprintf("%s Workout cancelled", p.icon("cancel"))))
	}
}

func (p *Printer) tick(e execute.Event) {
	style := p.styles.active
	if e.Phase != execute.PhaseActive {
		style = p.styles.rest
	}
	if e.Final {
		style = p.styles.final
	}

	if !p.opts.TTY {
		if e.Final {
			p.println(style.Render(fmt.Sprintf("  %d...", e.Remaining)))
		}
		return
	}

	line := fmt.Sprintf("  %s %s %s", runewidth.FillRight(p.PhaseName(e.Phase)+": "+e.Label, 24), Clock(e.Remaining), Bar(e.Elapsed, barWidth))
	if e.ShowOverall {
		line += p.styles.dim.Render(fmt.Sprintf("  overall %3.0f%%", e.Overall*100))
	}
	fmt.Fprintf(p.w, "\r\033[2K%s", style.Render(line))
	p.onLine = true
}

func (p *Printer) summary(e execute.Event) {
	p.endLine()
	p.println(p.styles.done.Render(fmt.Sprintf("%s Workout complete: %s", p.icon("complete"), e.Routine)))
	if s := e.Summary; s != nil {
		p.println(fmt.Sprintf("  Active time: %s", preview.FormatDuration(s.ActiveSeconds)))
		p.println(fmt.Sprintf("  Sets:        %d", s.TotalSets))
		if s.Message != "" {
			p.println(p.styles.header.Render("  " + s.Message))
		}
	}
}

// PhaseName returns the display name of a phase, e.g. "Rest Between Reps".
func (p *Printer) PhaseName(ph execute.Phase) string {
	return p.title.String(strings.ReplaceAll(ph.String(), "-", " "))
}

func (p *Printer) println(s string) {
	p.endLine()
	fmt.Fprintln(p.w, s)
}

func (p *Printer) endLine() {
	if p.onLine {
		fmt.Fprintln(p.w)
		p.onLine = false
	}
}

func (p *Printer) icon(name string) string {
	if p.opts.Emoji {
		if s, ok := emoji[name]; ok {
			return s
		}
	}
	return ascii[name]
}

var emoji = map[string]string{
	"start":    "\U0001F3CB",
	"exercise": "\U0001F4AA",
	"pause":    "⏸",
	"rep":      "✅",
	"complete": "\U0001F389",
	"cancel":   "⛔",
}

var ascii = map[string]string{
	"start":    ">>",
	"exercise": "*",
	"pause":    "..",
	"rep":      "[x]",
	"complete": "**",
	"cancel":   "!!",
}

// Clock formats seconds as m:ss.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Bar renders fraction in [0,1] as a fixed-width bar.
func Bar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
