// events.go defines the progress events the engine emits and the reporters
// that receive them.
package execute

// Phase is the stage of execution an event belongs to.
type Phase int

const (
	PhasePreparing Phase = iota
	PhaseActive
	PhaseResting
	PhaseRestBetweenExercises
	PhaseRestBetweenReps
	PhaseComplete
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhasePreparing:
		return "preparing"
	case PhaseActive:
		return "active"
	case PhaseResting:
		return "resting"
	case PhaseRestBetweenExercises:
		return "rest-between-exercises"
	case PhaseRestBetweenReps:
		return "rest-between-reps"
	case PhaseComplete:
		return "complete"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// EventKind identifies a notification point in the execution sequence.
type EventKind int

const (
	EventRoutineStart    EventKind = iota // Before the first rep
	EventRepStart                         // Start of every rep
	EventExerciseStart                    // Before the first set of an exercise
	EventSetReady                         // Before each active countdown
	EventTick                             // One per elapsed second of a countdown
	EventIntervalDone                     // Countdown reached zero
	EventPause                            // Fixed, untimed delay
	EventNextExercise                     // After the last set, when another exercise follows
	EventRepComplete                      // Between reps
	EventRoutineComplete                  // Routine finished
	EventCancelled                        // Cancellation observed
)

func (k EventKind) String() string {
	switch k {
	case EventRoutineStart:
		return "routine_start"
	case EventRepStart:
		return "rep_start"
	case EventExerciseStart:
		return "exercise_start"
	case EventSetReady:
		return "set_ready"
	case EventTick:
		return "tick"
	case EventIntervalDone:
		return "interval_done"
	case EventPause:
		return "pause"
	case EventNextExercise:
		return "next_exercise"
	case EventRepComplete:
		return "rep_complete"
	case EventRoutineComplete:
		return "routine_complete"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is a structured progress notification. Positions are 1-based; a zero
// position means the event is not tied to that level (e.g. routine start).
type Event struct {
	Kind    EventKind
	Phase   Phase
	Routine string
	Label   string

	// Countdown state. For pauses, Remaining and Total are the pause length.
	Remaining int
	Total     int
	Elapsed   float64
	Final     bool

	Rep             int
	TotalReps       int
	Exercise        int
	ExercisesPerRep int
	Set             int
	TotalSets       int

	// Overall is the fraction of exercises reached across the routine.
	// ShowOverall is false for single-exercise, single-rep routines.
	Overall     float64
	ShowOverall bool

	Next    string
	Summary *Summary
}

// Summary is attached to the routine-complete event.
type Summary struct {
	Routine        string
	ActiveSeconds  int
	TotalSets      int
	PlannedSeconds int
	NoRest         bool
	Message        string
}

// Reporter receives engine events. Report is called synchronously on the
// engine's goroutine; implementations that do slow work should hand it off.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

// Report implements Reporter.
func (f ReporterFunc) Report(e Event) { f(e) }

type teeReporter []Reporter

func (t teeReporter) Report(e Event) {
	for _, r := range t {
		r.Report(e)
	}
}

// Tee returns a Reporter that forwards each event to every non-nil reporter in order.
func Tee(reporters ...Reporter) Reporter {
	var out teeReporter
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// DefaultMessages is used when a MessageSource has no messages.
var DefaultMessages = []string{"Workout complete!"}

// MessageSource supplies the completion message. Pick returns an index in
// [0, n); a nil Pick always chooses the first message.
type MessageSource struct {
	Messages []string
	Pick     func(n int) int
}

// Message returns one message from the source.
func (m MessageSource) Message() string {
	msgs := m.Messages
	if len(msgs) == 0 {
		msgs = DefaultMessages
	}
	if m.Pick == nil {
		return msgs[0]
	}
	i := m.Pick(len(msgs))
	if i < 0 || i >= len(msgs) {
		i = 0
	}
	return msgs[i]
}
