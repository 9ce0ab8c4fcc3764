// Package routine defines the workout domain model: exercises, routines,
// and the totals derived from them.
package routine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Difficulty bounds for a routine.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Exercise is a single timed movement performed for a number of sets.
// Duration and Rest are whole seconds. Rest 0 means no rest between sets.
type Exercise struct {
	Name        string `json:"name" yaml:"name"`
	Sets        int    `json:"sets" yaml:"sets"`
	Duration    int    `json:"duration" yaml:"duration"`
	Rest        int    `json:"rest" yaml:"rest"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Routine is an ordered list of exercises repeated Reps times.
// A routine is read-only once loaded.
type Routine struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Difficulty  int        `json:"difficulty" yaml:"difficulty"`
	Reps        int        `json:"reps" yaml:"reps"`
	Exercises   []Exercise `json:"exercises" yaml:"exercises"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// TotalTime returns the seconds needed for sets of duration with rest between
// them. No rest is charged after the final set.
func TotalTime(sets, duration, rest int) int {
	if sets <= 0 {
		return 0
	}
	return sets*duration + (sets-1)*rest
}

// TotalTime returns the seconds needed to perform every set of e.
func (e Exercise) TotalTime() int {
	return TotalTime(e.Sets, e.Duration, e.Rest)
}

// ActiveTime returns the seconds of e spent working, excluding rest.
func (e Exercise) ActiveTime() int {
	return e.Sets * e.Duration
}

// RoundDuration returns the seconds of a single pass through every exercise.
func (r *Routine) RoundDuration() int {
	total := 0
	for _, e := range r.Exercises {
		total += e.TotalTime()
	}
	return total
}

// TotalDuration returns the seconds of the whole routine across all reps.
func (r *Routine) TotalDuration() int {
	return r.RoundDuration() * r.Reps
}

// ExercisesPerRep returns the number of exercises in one rep.
func (r *Routine) ExercisesPerRep() int {
	return len(r.Exercises)
}

// TotalExercises returns the number of exercises performed across all reps.
func (r *Routine) TotalExercises() int {
	return len(r.Exercises) * r.Reps
}

// TotalSets returns the number of sets performed across all reps.
func (r *Routine) TotalSets() int {
	sets := 0
	for _, e := range r.Exercises {
		sets += e.Sets
	}
	return sets * r.Reps
}

// ActiveSeconds returns the working seconds across all reps, excluding rest.
func (r *Routine) ActiveSeconds() int {
	active := 0
	for _, e := range r.Exercises {
		active += e.ActiveTime()
	}
	return active * r.Reps
}

// IsNoRest reports whether every exercise in r has zero rest.
func (r *Routine) IsNoRest() bool {
	for _, e := range r.Exercises {
		if e.Rest != 0 {
			return false
		}
	}
	return true
}

// HasTag reports whether r carries tag, ignoring case and surrounding space.
func (r *Routine) HasTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Fingerprint returns a stable hash of the routine contents. Two routines with
// the same fields produce the same fingerprint.
func Fingerprint(r *Routine) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal routine: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
