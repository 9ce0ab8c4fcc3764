// init.go implements the "hiit init" command.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/config"
	"github.com/faintdeception/hiit-cli/internal/routine"
	"github.com/faintdeception/hiit-cli/internal/schedule"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory with a sample routine",
	Long: `Create the data directory, a default config.yaml, a sample routine
(routines/quick-hiit.json) and a sample weekly schedule. Existing files are
kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite existing config and samples")
}

// sampleRoutine is written by init as routines/quick-hiit.json.
func sampleRoutine() *routine.Routine {
	return &routine.Routine{
		Name:        "Quick HIIT",
		Description: "A short full-body circuit to get started",
		Difficulty:  2,
		Reps:        2,
		Tags:        []string{"cardio", "full-body"},
		Exercises: []routine.Exercise{
			{Name: "Jumping Jacks", Sets: 2, Duration: 30, Rest: 10},
			{Name: "Squats", Sets: 2, Duration: 30, Rest: 10},
			{Name: "Push-ups", Sets: 2, Duration: 20, Rest: 15, Description: "Knees down is fine"},
			{Name: "Mountain Climbers", Sets: 2, Duration: 20, Rest: 20},
		},
	}
}

// sampleSchedule is written by init as schedules/week.json.
func sampleSchedule() *schedule.Schedule {
	return &schedule.Schedule{
		Name: "Starter Week",
		Days: map[string][]string{
			"monday":    {"quick-hiit"},
			"wednesday": {"quick-hiit"},
			"friday":    {"quick-hiit"},
		},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dir, err := config.ResolveDir(dirFlag)
	if err != nil {
		return err
	}

	for _, sub := range []string{dir, config.RoutinesDir(dir), config.SchedulesDir(dir)} {
		if mkErr := os.MkdirAll(sub, 0755); mkErr != nil {
			return fmt.Errorf("creating directory %s: %w", sub, mkErr)
		}
	}

	if shouldWrite(filepath.Join(dir, "config.yaml")) {
		if err := config.WriteConfig(dir, config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintln(out, "  Created config.yaml")
	}

	if shouldWrite(filepath.Join(config.RoutinesDir(dir), "quick-hiit.json")) {
		if err := routine.Save(config.RoutinesDir(dir), "quick-hiit", sampleRoutine()); err != nil {
			return err
		}
		fmt.Fprintln(out, "  Created routines/quick-hiit.json")
	}

	if shouldWrite(filepath.Join(config.SchedulesDir(dir), "week.json")) {
		if err := schedule.Save(config.SchedulesDir(dir), "week", sampleSchedule()); err != nil {
			return err
		}
		fmt.Fprintln(out, "  Created schedules/week.json")
	}

	fmt.Fprintf(out, "hiit initialized in %s\n", dir)
	fmt.Fprintln(out, "Try: hiit preview quick-hiit")
	return nil
}

func shouldWrite(path string) bool {
	if forceFlag {
		return true
	}
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}
