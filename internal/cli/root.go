// Package cli defines Cobra command definitions for the hiit CLI.
// This file contains the root command, version flag, and shared helpers.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/config"
	"github.com/faintdeception/hiit-cli/internal/timer"
)

var (
	dirFlag string
	version = "dev" // set via ldflags at build time
)

// Seams replaced in tests.
var (
	newSleeper = func() timer.Sleeper { return timer.RealSleeper{} }
	now        = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "hiit",
	Short: "Interval training timer for the terminal",
	Long: `hiit runs interval workouts from routine files: timed sets, rests,
and reps with a live countdown. Routines and weekly schedules live in the
data directory (default ~/.hiit, override with --dir or HIIT_HOME).`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Data directory (default $HIIT_HOME or ~/.hiit)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(logCmd)
}

// loadEnv resolves the data directory and loads its config.
func loadEnv() (string, *config.Config, error) {
	dir, err := config.ResolveDir(dirFlag)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}
	return dir, cfg, nil
}

func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}
