package routine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRoutine is returned when a routine fails its validity rules.
var ErrInvalidRoutine = errors.New("invalid routine")

// ValidationError describes the first rule a routine breaks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid routine: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRoutine
}

// Validate checks a single exercise.
func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if e.Sets <= 0 {
		return &ValidationError{Field: "sets", Reason: fmt.Sprintf("must be positive, got %d", e.Sets)}
	}
	if e.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: fmt.Sprintf("must be positive, got %d", e.Duration)}
	}
	if e.Rest < 0 {
		return &ValidationError{Field: "rest", Reason: fmt.Sprintf("must not be negative, got %d", e.Rest)}
	}
	return nil
}

// Validate checks r and every exercise in it. The returned error unwraps to
// ErrInvalidRoutine.
func (r *Routine) Validate() error {
	if r == nil {
		return &ValidationError{Field: "routine", Reason: "is nil"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(r.Exercises) == 0 {
		return &ValidationError{Field: "exercises", Reason: "must not be empty"}
	}
	for i, e := range r.Exercises {
		if err := e.Validate(); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return &ValidationError{
					Field:  fmt.Sprintf("exercises[%d].%s", i, ve.Field),
					Reason: ve.Reason,
				}
			}
			return err
		}
	}
	if r.Difficulty < MinDifficulty || r.Difficulty > MaxDifficulty {
		return &ValidationError{
			Field:  "difficulty",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinDifficulty, MaxDifficulty, r.Difficulty),
		}
	}
	if r.Reps < 1 {
		return &ValidationError{Field: "reps", Reason: fmt.Sprintf("must be at least 1, got %d", r.Reps)}
	}
	return nil
}
