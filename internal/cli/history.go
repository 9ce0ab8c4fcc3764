// history.go implements the "hiit history" command.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/history"
	"github.com/faintdeception/hiit-cli/internal/preview"
)

// historyFile is the sqlite database inside the data directory.
const historyFile = "history.db"

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent workouts",
	Long: `Show recent workouts and totals, or the details of one run when a run
id is given. With --prune, first remove runs older than history.max_age_days
from config.yaml; with --keep N, keep only the N most recent runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	limitFlag int
	pruneFlag bool
	keepFlag  int
)

func init() {
	historyCmd.Flags().IntVar(&limitFlag, "limit", 10, "Number of runs to show (0 = all)")
	historyCmd.Flags().BoolVar(&pruneFlag, "prune", false, "Remove runs older than history.max_age_days")
	historyCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N runs (0 = keep all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadEnv()
	if err != nil {
		return err
	}

	store, err := history.NewStore(filepath.Join(dir, historyFile))
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		return showRun(cmd, store, args[0])
	}

	if keepFlag > 0 {
		pruned, err := store.PruneKeepRecent(keepFlag)
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		fmt.Fprintf(out, "Removed %d run(s), kept the last %d.\n", pruned, keepFlag)
	}

	if pruneFlag {
		pruned, err := store.PruneOlderThan(cfg.History.MaxAgeDays, now(), false)
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		fmt.Fprintf(out, "Removed %d run(s) older than %d days.\n", pruned, cfg.History.MaxAgeDays)
	}

	runs, err := store.List(limitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No workouts recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-16s  %s %-9s %8s %8s\n", "STARTED", preview.Pad("ROUTINE", 24), "OUTCOME", "ACTIVE", "TOOK")
	for _, r := range runs {
		fmt.Fprintf(out, "%-16s  %s %-9s %8s %8s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"), preview.Pad(r.Routine, 24), r.Outcome,
			preview.FormatDuration(r.ActiveSeconds), preview.FormatDuration(int(r.Duration().Seconds())))
	}

	st, err := store.Stats("")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d run(s), %d completed, %d cancelled, %s active\n",
		st.Runs, st.Completed, st.Cancelled, preview.FormatDuration(st.ActiveSeconds))
	return nil
}

func showRun(cmd *cobra.Command, store *history.Store, id string) error {
	r, err := store.Get(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("run %s not found", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:         %s\n", r.ID)
	fmt.Fprintf(out, "Routine:     %s\n", r.Routine)
	fmt.Fprintf(out, "Outcome:     %s\n", r.Outcome)
	fmt.Fprintf(out, "Started:     %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Took:        %s\n", preview.FormatDuration(int(r.Duration().Seconds())))
	fmt.Fprintf(out, "Active time: %s of %s planned\n",
		preview.FormatDuration(r.ActiveSeconds), preview.FormatDuration(r.PlannedSeconds))
	fmt.Fprintf(out, "Sets:        %d\n", r.TotalSets)
	if r.Fingerprint != "" {
		fmt.Fprintf(out, "Fingerprint: %s\n", r.Fingerprint)
	}
	return nil
}
