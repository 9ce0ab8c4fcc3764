package log

import (
	"fmt"
	"io"
	"time"

	"github.com/faintdeception/hiit-cli/internal/execute"
)

// Journal records the milestones of one workout run in the event log.
// It implements execute.Reporter. Write failures are reported to warn and
// never interrupt the workout.
type Journal struct {
	logger  *Logger
	runID   string
	warn    io.Writer
	started time.Time
	current string
	now     func() time.Time
}

// NewJournal creates a Journal for the run identified by runID.
func NewJournal(logger *Logger, runID string, warn io.Writer) *Journal {
	return &Journal{
		logger: logger,
		runID:  runID,
		warn:   warn,
		now:    time.Now,
	}
}

// Report implements execute.Reporter.
func (j *Journal) Report(e execute.Event) {
	var ev LogEvent
	switch e.Kind {
	case execute.EventRoutineStart:
		j.started = j.now()
		ev = LogEvent{Event: EventWorkoutStarted, Reps: e.TotalReps}
	case execute.EventExerciseStart:
		j.current = e.Label
		return
	case execute.EventRepComplete:
		ev = LogEvent{Event: EventRepCompleted, Rep: e.Rep, Reps: e.TotalReps}
	case execute.EventRoutineComplete:
		ev = LogEvent{Event: EventWorkoutCompleted, Reps: e.TotalReps}
		if e.Summary != nil {
			ev.ActiveSeconds = e.Summary.ActiveSeconds
			ev.TotalSets = e.Summary.TotalSets
		}
	case execute.EventCancelled:
		ev = LogEvent{Event: EventWorkoutCancelled, Rep: e.Rep, Reps: e.TotalReps, Set: e.Set}
		if e.Exercise > 0 {
			ev.Exercise = j.current
		}
	default:
		return
	}

	ev.RunID = j.runID
	ev.Routine = e.Routine
	if !j.started.IsZero() && ev.Event != EventWorkoutStarted {
		ev.DurationMs = j.now().Sub(j.started).Milliseconds()
	}

	if err := j.logger.Append(ev); err != nil && j.warn != nil {
		fmt.Fprintf(j.warn, "Warning: failed to log %s: %v\n", ev.Event, err)
	}
}
