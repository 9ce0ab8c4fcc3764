// events.go implements the "hiit log" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/log"
	"github.com/faintdeception/hiit-cli/internal/preview"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show workout events from the event log",
	Long: `Show the most recent milestones written to log.jsonl in the data
directory: workouts started, reps completed, workouts finished or cancelled.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

var eventLimitFlag int

func init() {
	logCmd.Flags().IntVar(&eventLimitFlag, "limit", 20, "Number of events to show (0 = all)")
}

func runLog(cmd *cobra.Command, args []string) error {
	dir, _, err := loadEnv()
	if err != nil {
		return err
	}

	logger, err := log.NewLogger(dir)
	if err != nil {
		return err
	}
	events, err := logger.ReadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No events logged yet.")
		return nil
	}
	if eventLimitFlag > 0 && len(events) > eventLimitFlag {
		events = events[len(events)-eventLimitFlag:]
	}

	for _, e := range events {
		fmt.Fprintf(out, "%s  %s %s  %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), preview.Pad(e.Event, 18), preview.Pad(e.Routine, 24), eventDetail(e))
	}
	return nil
}

func eventDetail(e log.LogEvent) string {
	switch e.Event {
	case log.EventRepCompleted:
		return fmt.Sprintf("rep %d/%d", e.Rep, e.Reps)
	case log.EventWorkoutCompleted:
		return fmt.Sprintf("%d sets, %s active", e.TotalSets, preview.FormatDuration(e.ActiveSeconds))
	case log.EventWorkoutCancelled:
		if e.Exercise != "" {
			return "during " + e.Exercise
		}
	}
	return ""
}
