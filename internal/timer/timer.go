// Package timer implements the one-second countdown used for every timed
// interval of a workout.
package timer

import (
	"context"
	"errors"
	"time"
)

// Tick is the unit of time between countdown notifications.
const Tick = time.Second

// ErrInvalidDuration is returned for intervals shorter than one second.
var ErrInvalidDuration = errors.New("countdown duration must be at least one second")

// Sleeper blocks for a duration or until ctx is done, whichever comes first.
// It returns ctx.Err() when interrupted.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper sleeps on the wall clock.
type RealSleeper struct{}

// Sleep implements Sleeper.
func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Interval describes one countdown. Emphasize marks an active interval whose
// final seconds should be highlighted by the renderer.
type Interval struct {
	Label     string
	Seconds   int
	Emphasize bool
}

// Progress is a single countdown notification.
type Progress struct {
	Label     string
	Remaining int
	Total     int
	// Elapsed is the fraction of the interval that has passed, in [0,1].
	Elapsed float64
	// Final is set on ticks inside the emphasis window of an emphasized interval.
	Final bool
	// Done is set only on the completion notification.
	Done bool
}

// Countdown runs intervals against a Sleeper.
type Countdown struct {
	sleeper      Sleeper
	finalSeconds int
}

// New creates a Countdown. finalSeconds is the size of the emphasis window at
// the end of an emphasized interval.
func New(sleeper Sleeper, finalSeconds int) *Countdown {
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	return &Countdown{sleeper: sleeper, finalSeconds: finalSeconds}
}

// Run counts iv down one second at a time. notify receives one Progress per
// elapsed second with Remaining iv.Seconds-1 down to 0, then one Progress with
// Done set. Cancellation is checked before every tick and before the
// completion notification; a cancelled countdown returns ctx.Err() and never
// sends the completion notification.
func (c *Countdown) Run(ctx context.Context, iv Interval, notify func(Progress)) error {
	if iv.Seconds < 1 {
		return ErrInvalidDuration
	}
	if notify == nil {
		notify = func(Progress) {}
	}

	for remaining := iv.Seconds - 1; remaining >= 0; remaining-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.sleeper.Sleep(ctx, Tick); err != nil {
			return err
		}
		notify(Progress{
			Label:     iv.Label,
			Remaining: remaining,
			Total:     iv.Seconds,
			Elapsed:   float64(iv.Seconds-remaining) / float64(iv.Seconds),
			Final:     iv.Emphasize && remaining > 0 && remaining <= c.finalSeconds,
		})
	}

	// A cancel that lands on the last tick still suppresses completion.
	if err := ctx.Err(); err != nil {
		return err
	}
	notify(Progress{
		Label:   iv.Label,
		Total:   iv.Seconds,
		Elapsed: 1,
		Done:    true,
	})
	return nil
}

// Pause blocks for a fixed number of seconds without tick notifications.
// It returns ctx.Err() if cancelled before or during the pause.
func (c *Countdown) Pause(ctx context.Context, seconds int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if seconds <= 0 {
		return nil
	}
	return c.sleeper.Sleep(ctx, time.Duration(seconds)*Tick)
}
