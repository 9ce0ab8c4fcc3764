package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faintdeception/hiit-cli/internal/execute"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	if err := logger.Append(LogEvent{Event: EventWorkoutStarted, Routine: "Quick HIIT"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := logger.Append(LogEvent{Event: EventWorkoutCompleted, Routine: "Quick HIIT", TotalSets: 5}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Time.IsZero() {
		t.Error("Time was not stamped")
	}
	if events[1].TotalSets != 5 {
		t.Errorf("TotalSets = %d, want 5", events[1].TotalSets)
	}
	if logger.Path() != filepath.Join(dir, "log.jsonl") {
		t.Errorf("Path = %q", logger.Path())
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(events))
	}
}

func TestReadAllCorruptLine(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "log.jsonl"), []byte("{\"event\":\"x\"}\nnot json\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	logger, _ := NewLogger(dir)
	if _, err := logger.ReadAll(); err == nil {
		t.Error("expected error for corrupt line, got nil")
	}
}

func TestJournalRecordsMilestones(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	clock := time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC)
	j := NewJournal(logger, "run-1", &bytes.Buffer{})
	j.now = func() time.Time { return clock }

	j.Report(execute.Event{Kind: execute.EventRoutineStart, Routine: "Quick HIIT", TotalReps: 2})
	j.Report(execute.Event{Kind: execute.EventTick, Routine: "Quick HIIT"})
	clock = clock.Add(90 * time.Second)
	j.Report(execute.Event{Kind: execute.EventRepComplete, Routine: "Quick HIIT", Rep: 1, TotalReps: 2})
	j.Report(execute.Event{
		Kind:      execute.EventRoutineComplete,
		Routine:   "Quick HIIT",
		TotalReps: 2,
		Summary:   &execute.Summary{ActiveSeconds: 120, TotalSets: 6},
	})

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	want := []string{EventWorkoutStarted, EventRepCompleted, EventWorkoutCompleted}
	if len(events) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Event != want[i] {
			t.Errorf("events[%d].Event = %q, want %q", i, ev.Event, want[i])
		}
		if ev.RunID != "run-1" {
			t.Errorf("events[%d].RunID = %q, want run-1", i, ev.RunID)
		}
	}
	if events[2].ActiveSeconds != 120 || events[2].TotalSets != 6 {
		t.Errorf("completed event = %+v", events[2])
	}
	if events[2].DurationMs != 90000 {
		t.Errorf("DurationMs = %d, want 90000", events[2].DurationMs)
	}
}

func TestJournalCancelled(t *testing.T) {
	logger, _ := NewLogger(t.TempDir())
	j := NewJournal(logger, "run-2", nil)

	j.Report(execute.Event{Kind: execute.EventExerciseStart, Routine: "R", Label: "Burpees", Rep: 1, Exercise: 2})
	j.Report(execute.Event{Kind: execute.EventCancelled, Routine: "R", Label: "R", Rep: 1, Exercise: 2, Set: 3})

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Event != EventWorkoutCancelled || events[0].Exercise != "Burpees" || events[0].Set != 3 {
		t.Errorf("cancelled event = %+v", events[0])
	}
}

func TestJournalWarnsOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	logger, _ := NewLogger(dir)
	// A directory where the log file should be makes every append fail.
	if err := os.Mkdir(logger.Path(), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var warn bytes.Buffer
	j := NewJournal(logger, "run-3", &warn)
	j.Report(execute.Event{Kind: execute.EventRoutineStart, Routine: "R"})

	if !bytes.Contains(warn.Bytes(), []byte("Warning: failed to log workout_started")) {
		t.Errorf("warning not written, got %q", warn.String())
	}
}
