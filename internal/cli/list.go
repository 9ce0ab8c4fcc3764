// list.go implements the "hiit list" and "hiit preview" commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faintdeception/hiit-cli/internal/config"
	"github.com/faintdeception/hiit-cli/internal/preview"
	"github.com/faintdeception/hiit-cli/internal/routine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available routines",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var tagFlag string

func init() {
	listCmd.Flags().StringVar(&tagFlag, "tag", "", "Only list routines with this tag")
}

var previewCmd = &cobra.Command{
	Use:   "preview <routine>",
	Short: "Show a routine's structure and total time",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runList(cmd *cobra.Command, args []string) error {
	dir, _, err := loadEnv()
	if err != nil {
		return err
	}

	entries, err := routine.List(config.RoutinesDir(dir))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	valid := 0
	for _, e := range entries {
		if e.Err != nil {
			warnf(cmd.ErrOrStderr(), "skipping %s: %v", e.Slug, e.Err)
			continue
		}
		r := e.Routine
		if tagFlag != "" && !r.HasTag(tagFlag) {
			continue
		}
		if valid == 0 {
			fmt.Fprintf(out, "%s %s %-5s %4s %8s  %s\n", preview.Pad("FILE", 20), preview.Pad("NAME", 24), "LEVEL", "REPS", "TIME", "TAGS")
		}
		valid++
		fmt.Fprintf(out, "%s %s %-5s %4d %8s  %s\n",
			preview.Pad(e.Slug, 20), preview.Pad(r.Name, 24), difficulty(r.Difficulty), r.Reps,
			preview.FormatDuration(r.TotalDuration()), strings.Join(r.Tags, ", "))
	}

	if valid == 0 {
		if tagFlag != "" {
			fmt.Fprintf(out, "No routines tagged %q.\n", tagFlag)
			return nil
		}
		fmt.Fprintf(out, "No routines found in %s. Run 'hiit init' to create a sample.\n", config.RoutinesDir(dir))
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	dir, _, err := loadEnv()
	if err != nil {
		return err
	}

	r, err := routine.Load(config.RoutinesDir(dir), args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), preview.Format(preview.Preview(r)))
	return nil
}

// difficulty renders a 1..5 level as stars, e.g. "***..".
func difficulty(level int) string {
	if level < routine.MinDifficulty || level > routine.MaxDifficulty {
		return "?"
	}
	return strings.Repeat("*", level) + strings.Repeat(".", routine.MaxDifficulty-level)
}
