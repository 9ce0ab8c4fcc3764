// today.go implements the "hiit today" and "hiit schedule" commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/config"
	"github.com/faintdeception/hiit-cli/internal/preview"
	"github.com/faintdeception/hiit-cli/internal/routine"
	"github.com/faintdeception/hiit-cli/internal/schedule"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the routines scheduled for today",
	Long: `Look up today's weekday in every schedule file and list the planned
routines. With --run, start the first one.`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print every weekly schedule",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

var todayRunFlag bool

func init() {
	todayCmd.Flags().BoolVar(&todayRunFlag, "run", false, "Run the first scheduled routine")
	addWorkoutFlags(todayCmd)
}

func loadSchedules(cmd *cobra.Command, dir string) ([]schedule.Entry, error) {
	entries, err := schedule.List(config.SchedulesDir(dir))
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Err != nil {
			warnf(cmd.ErrOrStderr(), "skipping schedule %s: %v", e.Slug, e.Err)
		}
	}
	return entries, nil
}

func runToday(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadEnv()
	if err != nil {
		return err
	}
	entries, err := loadSchedules(cmd, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	day := now().Weekday()
	matches := schedule.ForDay(entries, day)
	if len(matches) == 0 {
		fmt.Fprintf(out, "Nothing scheduled for %s.\n", day)
		return nil
	}

	routinesDir := config.RoutinesDir(dir)
	fmt.Fprintf(out, "Today (%s):\n", day)
	for _, m := range matches {
		fmt.Fprintf(out, "  %s\n", m.Schedule)
		for _, name := range m.Routines {
			r, loadErr := routine.Load(routinesDir, name)
			if loadErr != nil {
				fmt.Fprintf(out, "    - %s (unavailable: %v)\n", name, loadErr)
				continue
			}
			fmt.Fprintf(out, "    - %s: %s, %s\n", name, r.Name, preview.FormatDuration(r.TotalDuration()))
		}
	}

	if !todayRunFlag {
		return nil
	}

	first := matches[0].Routines[0]
	r, err := routine.Load(routinesDir, first)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	_, err = workout(cmd, dir, cfg, r)
	return err
}

func runSchedule(cmd *cobra.Command, args []string) error {
	dir, _, err := loadEnv()
	if err != nil {
		return err
	}
	entries, err := loadSchedules(cmd, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := 0
	for _, e := range entries {
		if e.Schedule == nil {
			continue
		}
		if shown > 0 {
			fmt.Fprintln(out)
		}
		shown++
		fmt.Fprintf(out, "%s (%s)\n", e.Schedule.Name, e.Slug)
		for _, day := range schedule.Weekdays {
			routines := e.Schedule.Days[day]
			if len(routines) == 0 {
				continue
			}
			fmt.Fprintf(out, "  %-10s %s\n", day, strings.Join(routines, ", "))
		}
	}
	if shown == 0 {
		fmt.Fprintf(out, "No schedules found in %s.\n", config.SchedulesDir(dir))
	}
	return nil
}
