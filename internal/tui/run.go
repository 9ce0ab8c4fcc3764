package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/faintdeception/hiit-cli/internal/execute"
)

// IsTTY returns true if stdin and stdout are connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// Runner executes a workout, sending events to reporter.
type Runner func(ctx context.Context, reporter execute.Reporter) (execute.Outcome, error)

// Options configure the program. Nil Input disables keyboard input.
type Options struct {
	Input  io.Reader
	Output io.Writer
	// Reporter also receives every event, on the engine's goroutine.
	Reporter execute.Reporter
}

// Run shows the live view while run executes on its own goroutine.
// Pressing a quit key cancels the workout; the view stays up until the
// engine reports the cancellation.
func Run(ctx context.Context, title string, run Runner, opts Options) (execute.Outcome, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(opts.Input)}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(NewModel(title, cancel), progOpts...)

	done := make(chan DoneMsg, 1)
	go func() {
		send := execute.ReporterFunc(func(e execute.Event) { p.Send(EventMsg(e)) })
		outcome, err := run(runCtx, execute.Tee(opts.Reporter, send))
		msg := DoneMsg{Outcome: outcome, Err: err}
		done <- msg
		p.Send(msg)
	}()

	_, runErr := p.Run()
	// The program may exit before the engine does (interrupt, parent context).
	cancel()
	result := <-done

	if runErr != nil && !errors.Is(runErr, tea.ErrInterrupted) && !errors.Is(runErr, tea.ErrProgramKilled) {
		return result.Outcome, fmt.Errorf("running live view: %w", runErr)
	}
	return result.Outcome, result.Err
}
