// Package execute implements the workout execution engine: it walks a
// routine rep by rep, exercise by exercise and set by set, driving the
// countdown timer and reporting progress events.
package execute

import (
	"context"
	"errors"
	"fmt"

	"github.com/faintdeception/hiit-cli/internal/routine"
	"github.com/faintdeception/hiit-cli/internal/timer"
)

// Fixed pacing delays, in seconds.
const (
	NoRestTransitionSeconds = 1
	PrepareSeconds          = 2
	RepPrepareSeconds       = 3
	RepRestSeconds          = 5
)

// Labels used for rest intervals and pauses.
const (
	LabelRest            = "Rest"
	LabelNoRest          = "No rest, keep going"
	LabelNextExercise    = "Next exercise"
	LabelGetReady        = "Get ready"
	LabelRestBetweenReps = "Rest between reps"
)

// Outcome is the result of a run that passed validation.
type Outcome int

const (
	Completed Outcome = iota + 1
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures an Engine.
type Options struct {
	// Sleeper drives the countdown. Defaults to timer.RealSleeper.
	Sleeper timer.Sleeper
	// FinalSeconds is the emphasis window at the end of each active set.
	FinalSeconds int
	Reporter     Reporter
	Messages     MessageSource
}

// Engine executes routines. An Engine holds no per-run state and may be
// reused for sequential runs.
type Engine struct {
	countdown *timer.Countdown
	reporter  Reporter
	messages  MessageSource
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}
	return &Engine{
		countdown: timer.New(opts.Sleeper, opts.FinalSeconds),
		reporter:  reporter,
		messages:  opts.Messages,
	}
}

// Execute runs r until it completes or ctx is cancelled. An invalid routine
// fails with an error wrapping routine.ErrInvalidRoutine before any timer
// starts. Cancellation is reported as the Cancelled outcome with a nil error.
func (e *Engine) Execute(ctx context.Context, r *routine.Routine) (Outcome, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	run := &execution{
		engine:   e,
		routine:  r,
		progress: newProgress(r),
		noRest:   r.IsNoRest(),
	}

	err := run.run(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			run.progress.phase = PhaseCancelled
			run.emit(run.progress.event(EventCancelled, r.Name))
			return Cancelled, nil
		}
		return 0, fmt.Errorf("executing %s: %w", r.Name, err)
	}

	run.progress.phase = PhaseComplete
	ev := run.progress.event(EventRoutineComplete, r.Name)
	ev.Summary = &Summary{
		Routine:        r.Name,
		ActiveSeconds:  r.ActiveSeconds(),
		TotalSets:      r.TotalSets(),
		PlannedSeconds: r.TotalDuration(),
		NoRest:         run.noRest,
		Message:        e.messages.Message(),
	}
	run.emit(ev)
	return Completed, nil
}

// execution is the state of a single Execute call.
type execution struct {
	engine   *Engine
	routine  *routine.Routine
	progress *progress
	noRest   bool
}

func (x *execution) emit(ev Event) {
	x.engine.reporter.Report(ev)
}

func (x *execution) run(ctx context.Context) error {
	r := x.routine
	x.emit(x.progress.event(EventRoutineStart, r.Name))

	for rep := 1; rep <= r.Reps; rep++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		x.progress.rep = rep
		x.progress.exercise = 0
		x.progress.set = 0

		if r.Reps > 1 && rep > 1 {
			label := fmt.Sprintf("%s: rep %d", LabelGetReady, rep)
			if err := x.pause(ctx, PhasePreparing, label, RepPrepareSeconds); err != nil {
				return err
			}
		}
		x.progress.phase = PhasePreparing
		x.emit(x.progress.event(EventRepStart, fmt.Sprintf("Rep %d/%d", rep, r.Reps)))

		for i, ex := range r.Exercises {
			if err := ctx.Err(); err != nil {
				return err
			}
			x.progress.exercise = i + 1
			x.progress.set = 0

			if err := x.exercise(ctx, ex); err != nil {
				return err
			}

			lastOfLast := rep == r.Reps && i == len(r.Exercises)-1
			if !lastOfLast {
				if err := x.betweenExercises(ctx, ex); err != nil {
					return err
				}
			}
		}

		if r.Reps > 1 && rep < r.Reps {
			x.progress.phase = PhaseRestBetweenReps
			x.emit(x.progress.event(EventRepComplete, fmt.Sprintf("Rep %d/%d complete", rep, r.Reps)))
			if err := x.pause(ctx, PhaseRestBetweenReps, LabelRestBetweenReps, RepRestSeconds); err != nil {
				return err
			}
		}
	}
	return nil
}

// exercise runs every set of ex, resting between sets per ex.Rest.
func (x *execution) exercise(ctx context.Context, ex routine.Exercise) error {
	x.progress.phase = PhasePreparing
	x.emit(x.progress.event(EventExerciseStart, ex.Name))

	for set := 1; set <= ex.Sets; set++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		x.progress.set = set

		x.progress.phase = PhasePreparing
		x.progress.remaining = ex.Duration
		ready := x.progress.event(EventSetReady, ex.Name)
		ready.Total = ex.Duration
		x.emit(ready)

		active := timer.Interval{Label: ex.Name, Seconds: ex.Duration, Emphasize: true}
		if err := x.countdown(ctx, PhaseActive, active); err != nil {
			return err
		}

		if set < ex.Sets {
			if ex.Rest > 0 {
				rest := timer.Interval{Label: LabelRest, Seconds: ex.Rest}
				if err := x.countdown(ctx, PhaseResting, rest); err != nil {
					return err
				}
			} else if err := x.pause(ctx, PhaseResting, LabelNoRest, NoRestTransitionSeconds); err != nil {
				return err
			}
		}
	}

	if next, ok := NextExercise(x.routine, x.progress.rep, x.progress.exercise); ok {
		ev := x.progress.event(EventNextExercise, LabelNextExercise)
		ev.Next = next.Name
		x.emit(ev)
	}
	return nil
}

// betweenExercises applies the inter-exercise rest policy. A routine where
// no exercise rests always uses the short transition, ahead of the
// exercise's own rest value.
func (x *execution) betweenExercises(ctx context.Context, ex routine.Exercise) error {
	switch {
	case x.noRest:
		return x.pause(ctx, PhaseRestBetweenExercises, LabelNoRest, NoRestTransitionSeconds)
	case ex.Rest > 0:
		rest := timer.Interval{Label: LabelRest, Seconds: ex.Rest}
		return x.countdown(ctx, PhaseRestBetweenExercises, rest)
	default:
		return x.pause(ctx, PhasePreparing, LabelGetReady, PrepareSeconds)
	}
}

// countdown runs iv, translating timer progress into events.
func (x *execution) countdown(ctx context.Context, phase Phase, iv timer.Interval) error {
	x.progress.phase = phase
	x.progress.remaining = iv.Seconds

	return x.engine.countdown.Run(ctx, iv, func(p timer.Progress) {
		x.progress.remaining = p.Remaining
		kind := EventTick
		if p.Done {
			kind = EventIntervalDone
		}
		ev := x.progress.event(kind, p.Label)
		ev.Total = p.Total
		ev.Elapsed = p.Elapsed
		ev.Final = p.Final
		x.emit(ev)
	})
}

// pause emits a pause event and blocks for seconds, honouring cancellation.
func (x *execution) pause(ctx context.Context, phase Phase, label string, seconds int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	x.progress.phase = phase
	x.progress.remaining = seconds
	ev := x.progress.event(EventPause, label)
	ev.Total = seconds
	x.emit(ev)
	return x.engine.countdown.Pause(ctx, seconds)
}
