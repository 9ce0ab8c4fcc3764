// progress.go tracks the position of a single execution call.
package execute

import "github.com/faintdeception/hiit-cli/internal/routine"

// progress is the transient position of one Execute call. It is owned by
// that call and discarded when it returns.
type progress struct {
	routine   *routine.Routine
	rep       int
	exercise  int // 1-based index within the rep
	set       int
	remaining int
	phase     Phase
}

func newProgress(r *routine.Routine) *progress {
	return &progress{routine: r, phase: PhasePreparing}
}

// overall returns ((rep-1)*perRep + exercise) / (perRep*reps).
func (p *progress) overall() float64 {
	perRep := p.routine.ExercisesPerRep()
	total := perRep * p.routine.Reps
	if total == 0 || p.rep == 0 {
		return 0
	}
	return float64((p.rep-1)*perRep+p.exercise) / float64(total)
}

// showOverall reports whether the overall fraction carries information.
func (p *progress) showOverall() bool {
	return p.routine.Reps > 1 || p.routine.ExercisesPerRep() > 1
}

// currentExercise returns the exercise at the current position, if any.
func (p *progress) currentExercise() (routine.Exercise, bool) {
	if p.exercise < 1 || p.exercise > len(p.routine.Exercises) {
		return routine.Exercise{}, false
	}
	return p.routine.Exercises[p.exercise-1], true
}

// event builds an Event stamped with the current position.
func (p *progress) event(kind EventKind, label string) Event {
	e := Event{
		Kind:            kind,
		Phase:           p.phase,
		Routine:         p.routine.Name,
		Label:           label,
		Remaining:       p.remaining,
		Rep:             p.rep,
		TotalReps:       p.routine.Reps,
		Exercise:        p.exercise,
		ExercisesPerRep: p.routine.ExercisesPerRep(),
		Set:             p.set,
		Overall:         p.overall(),
		ShowOverall:     p.showOverall(),
	}
	if ex, ok := p.currentExercise(); ok {
		e.TotalSets = ex.Sets
	}
	return e
}

// NextExercise returns the exercise that follows position (rep, exercise):
// the next one in the same rep, else the first of the next rep, else none.
// Positions are 1-based.
func NextExercise(r *routine.Routine, rep, exercise int) (routine.Exercise, bool) {
	if exercise < len(r.Exercises) {
		return r.Exercises[exercise], true
	}
	if rep < r.Reps && len(r.Exercises) > 0 {
		return r.Exercises[0], true
	}
	return routine.Exercise{}, false
}
