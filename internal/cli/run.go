// run.go implements the "hiit run" command, which executes a routine with
// a live display and records the result.
package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/config"
	"github.com/faintdeception/hiit-cli/internal/execute"
	"github.com/faintdeception/hiit-cli/internal/history"
	"github.com/faintdeception/hiit-cli/internal/log"
	"github.com/faintdeception/hiit-cli/internal/routine"
	"github.com/faintdeception/hiit-cli/internal/tui"
	"github.com/faintdeception/hiit-cli/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run <routine>",
	Short: "Run a workout",
	Long: `Run a routine with a live countdown. <routine> is a file name in the
routines directory (with or without extension) or a path to a routine file.

Press q, esc or ctrl+c to stop early. A stopped workout is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

// Workout flags are shared by every command that can start a routine, so
// "hiit run" and "hiit today --run" behave the same.
var (
	plainFlag     bool
	noHistoryFlag bool
)

func init() {
	addWorkoutFlags(runCmd)
}

// addWorkoutFlags binds the shared workout flags on cmd.
func addWorkoutFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&plainFlag, "plain", false, "Use the line renderer instead of the live view")
	cmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Do not record this run")
}

func runRun(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadEnv()
	if err != nil {
		return err
	}

	r, err := routine.Load(config.RoutinesDir(dir), args[0])
	if err != nil {
		return err
	}

	_, err = workout(cmd, dir, cfg, r)
	return err
}

// workout executes r and records it. Both outcomes return a nil error.
func workout(cmd *cobra.Command, dir string, cfg *config.Config, r *routine.Routine) (execute.Outcome, error) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	var journal execute.Reporter
	if logger, logErr := log.NewLogger(dir); logErr != nil {
		warnf(errOut, "event log disabled: %v", logErr)
	} else {
		journal = log.NewJournal(logger, runID, errOut)
	}

	messages := execute.MessageSource{Messages: cfg.Messages, Pick: rand.Intn}
	engineFor := func(rep execute.Reporter) *execute.Engine {
		return execute.New(execute.Options{
			Sleeper:      newSleeper(),
			FinalSeconds: cfg.UI.FinalSeconds,
			Reporter:     rep,
			Messages:     messages,
		})
	}

	clock := &workClock{}
	track := execute.Tee(journal, clock)

	started := now()
	var (
		outcome execute.Outcome
		err     error
	)
	if cfg.UI.Interactive && !plainFlag && out == os.Stdout && tui.IsTTY() {
		outcome, err = tui.Run(ctx, r.Name, func(ctx context.Context, rep execute.Reporter) (execute.Outcome, error) {
			return engineFor(rep).Execute(ctx, r)
		}, tui.Options{Input: os.Stdin, Output: os.Stdout, Reporter: track})
	} else {
		printer := ui.NewPrinter(out, ui.Options{
			Color: cfg.UI.Color,
			Emoji: cfg.UI.Emoji,
			TTY:   out == os.Stdout && ui.IsTerminal(os.Stdout),
		})
		outcome, err = engineFor(execute.Tee(printer, track)).Execute(ctx, r)
	}
	if err != nil {
		return 0, err
	}

	if cfg.History.Enabled && !noHistoryFlag {
		recordRun(cmd, dir, cfg, r, runID, outcome, started, clock)
	}
	return outcome, nil
}

// recordRun stores the run in the history database. Failures are warnings.
func recordRun(cmd *cobra.Command, dir string, cfg *config.Config, r *routine.Routine, runID string, outcome execute.Outcome, started time.Time, clock *workClock) {
	errOut := cmd.ErrOrStderr()

	store, err := history.NewStore(filepath.Join(dir, historyFile))
	if err != nil {
		warnf(errOut, "history not recorded: %v", err)
		return
	}
	defer func() { _ = store.Close() }()

	// Auto-prune old runs.
	if cfg.History.MaxAgeDays > 0 {
		pruned, pruneErr := store.PruneOlderThan(cfg.History.MaxAgeDays, now(), false)
		if pruneErr != nil {
			warnf(errOut, "history cleanup failed: %v", pruneErr)
		} else if pruned > 0 {
			fmt.Fprintf(errOut, "Cleaned up %d old run(s)\n", pruned)
		}
	}

	fp, err := routine.Fingerprint(r)
	if err != nil {
		warnf(errOut, "fingerprint: %v", err)
	}

	run := &history.Run{
		ID:             runID,
		Routine:        r.Name,
		Fingerprint:    fp,
		Outcome:        history.OutcomeCompleted,
		StartedAt:      started,
		EndedAt:        now(),
		PlannedSeconds: r.TotalDuration(),
		TotalSets:      clock.sets,
		ActiveSeconds:  clock.seconds,
	}
	if outcome == execute.Cancelled {
		run.Outcome = history.OutcomeCancelled
	}
	if err := store.Record(run); err != nil {
		warnf(errOut, "history not recorded: %v", err)
	}
}

// workClock counts the work actually done, so cancelled runs record a
// partial total.
type workClock struct {
	seconds int // active ticks
	sets    int // finished active intervals
}

func (w *workClock) Report(e execute.Event) {
	if e.Phase != execute.PhaseActive {
		return
	}
	switch e.Kind {
	case execute.EventTick:
		w.seconds++
	case execute.EventIntervalDone:
		w.sets++
	}
}
