// Package history provides SQLite-backed persistence for completed and
// cancelled workout runs.
package history

import "time"

// Outcome is how a recorded run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
)

// Run is one execution of a routine.
type Run struct {
	ID             string
	Routine        string
	Fingerprint    string // routine.Fingerprint at the time of the run
	Outcome        Outcome
	StartedAt      time.Time
	EndedAt        time.Time
	PlannedSeconds int
	ActiveSeconds  int
	TotalSets      int
}

// Duration is the wall-clock length of the run.
func (r Run) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Stats aggregates recorded runs.
type Stats struct {
	Runs          int
	Completed     int
	Cancelled     int
	ActiveSeconds int
	LastRun       time.Time
}
