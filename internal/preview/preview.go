// Package preview derives summary statistics from a routine without running it.
package preview

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/faintdeception/hiit-cli/internal/routine"
)

// nameWidth is the display width of the exercise column.
const nameWidth = 24

// Row is one exercise line of a preview.
type Row struct {
	Name     string
	Sets     int
	Duration int
	Rest     int
	Total    int
}

// Report holds everything shown by a preview. It shares no memory with the
// routine it was built from.
type Report struct {
	Name            string
	Description     string
	Difficulty      int
	Reps            int
	Tags            []string
	NoRest          bool
	Rows            []Row
	RoundSeconds    int
	TotalSeconds    int
	ExercisesPerRep int
	TotalExercises  int
}

// Preview builds a Report for r. It never mutates r.
func Preview(r *routine.Routine) Report {
	rep := Report{
		Name:            r.Name,
		Description:     r.Description,
		Difficulty:      r.Difficulty,
		Reps:            r.Reps,
		NoRest:          r.IsNoRest(),
		RoundSeconds:    r.RoundDuration(),
		TotalSeconds:    r.TotalDuration(),
		ExercisesPerRep: r.ExercisesPerRep(),
		TotalExercises:  r.TotalExercises(),
	}
	if len(r.Tags) > 0 {
		rep.Tags = append([]string(nil), r.Tags...)
	}
	rep.Rows = make([]Row, 0, len(r.Exercises))
	for _, e := range r.Exercises {
		rep.Rows = append(rep.Rows, Row{
			Name:     e.Name,
			Sets:     e.Sets,
			Duration: e.Duration,
			Rest:     e.Rest,
			Total:    e.TotalTime(),
		})
	}
	return rep
}

// Format renders rep as terminal-friendly text.
func Format(rep Report) string {
	var b strings.Builder

	b.WriteString(rep.Name + "\n")
	if rep.Description != "" {
		b.WriteString(rep.Description + "\n")
	}
	fmt.Fprintf(&b, "Difficulty: %d/%d\n", rep.Difficulty, routine.MaxDifficulty)
	if len(rep.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(rep.Tags, ", "))
	}
	if rep.NoRest {
		b.WriteString("No-rest routine\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%3s  %s %5s %6s %6s %8s\n", "#", Pad("Exercise", nameWidth), "Sets", "Work", "Rest", "Total")
	for i, row := range rep.Rows {
		fmt.Fprintf(&b, "%3d  %s %5d %6s %6s %8s\n",
			i+1,
			Pad(row.Name, nameWidth),
			row.Sets,
			FormatDuration(row.Duration),
			FormatDuration(row.Rest),
			FormatDuration(row.Total),
		)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-14s%s\n", "Single round:", FormatDuration(rep.RoundSeconds))
	if rep.Reps > 1 {
		fmt.Fprintf(&b, "%-14s%d\n", "Reps:", rep.Reps)
		fmt.Fprintf(&b, "%-14s%s\n", "Total time:", FormatDuration(rep.TotalSeconds))
		fmt.Fprintf(&b, "%-14s%d per rep, %d total\n", "Exercises:", rep.ExercisesPerRep, rep.TotalExercises)
	}

	return b.String()
}

// FormatDuration formats whole seconds as 45s, 2m5s or 1h2m3s.
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh%dm%ds", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Pad fits s into exactly width terminal cells: longer text is cut on a
// character boundary and ends in "...", shorter text is padded with spaces.
func Pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
