// Package testutil provides test helper utilities for hiit tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faintdeception/hiit-cli/internal/routine"
)

// TempDataDir creates a temporary data directory with the given files and
// returns its path. Files is a map of relative path -> content. Directories
// are created as needed. The directory is cleaned up when the test finishes.
func TempDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// QuickRoutineJSON returns a small valid routine file.
func QuickRoutineJSON() string {
	return `{
  "name": "Quick HIIT",
  "description": "Short full-body circuit",
  "difficulty": 3,
  "reps": 2,
  "tags": ["Cardio", "quick", "cardio"],
  "exercises": [
    {"name": "Jumping Jacks", "sets": 3, "duration": 30, "rest": 15},
    {"name": "Burpees", "sets": 2, "duration": 20, "rest": 25, "description": "Full burpee"}
  ]
}`
}

// NoRestRoutineYAML returns a valid YAML routine where no exercise rests.
func NoRestRoutineYAML() string {
	return `name: Tabata Blast
difficulty: 5
exercises:
  - name: Mountain Climbers
    sets: 2
    duration: 20
    rest: 0
  - name: Squat Jumps
    sets: 1
    duration: 20
`
}

// Routine builds a routine with reps and the given exercises at difficulty 3.
func Routine(reps int, exercises ...routine.Exercise) *routine.Routine {
	return &routine.Routine{
		Name:       "Test Routine",
		Difficulty: 3,
		Reps:       reps,
		Exercises:  exercises,
	}
}

// Exercise builds an exercise.
func Exercise(name string, sets, duration, rest int) routine.Exercise {
	return routine.Exercise{Name: name, Sets: sets, Duration: duration, Rest: rest}
}

// FakeSleeper records requested sleeps and returns immediately.
// OnSleep, when set, is called with the 1-based sleep count after each sleep
// is recorded; tests use it to cancel a context at a chosen tick.
// When Interrupt is true a sleep that ends with the context cancelled returns
// the context error, as a real interrupted sleep would.
type FakeSleeper struct {
	mu        sync.Mutex
	Slept     []time.Duration
	OnSleep   func(n int)
	Interrupt bool
}

// Sleep implements timer.Sleeper.
func (f *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	f.Slept = append(f.Slept, d)
	n := len(f.Slept)
	hook := f.OnSleep
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if f.Interrupt {
		return ctx.Err()
	}
	return nil
}

// Total returns the sum of all recorded sleeps.
func (f *FakeSleeper) Total() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total time.Duration
	for _, d := range f.Slept {
		total += d
	}
	return total
}

// Count returns the number of recorded sleeps.
func (f *FakeSleeper) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Slept)
}

// WeekScheduleJSON returns a schedule that runs quick-hiit on Monday and
// Wednesday and tabata-blast on Friday.
func WeekScheduleJSON() string {
	return `{
  "name": "Weekday Burn",
  "days": {
    "monday": ["quick-hiit"],
    "Wednesday": ["quick-hiit"],
    "friday": ["tabata-blast", "quick-hiit"]
  }
}`
}
