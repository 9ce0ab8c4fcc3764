package routine_test

import (
	"errors"
	"testing"

	"github.com/faintdeception/hiit-cli/internal/routine"
	"github.com/faintdeception/hiit-cli/internal/testutil"
)

func TestTotalTime(t *testing.T) {
	cases := []struct {
		sets, duration, rest int
		want                 int
	}{
		{3, 30, 15, 120},
		{1, 45, 30, 45},
		{4, 20, 0, 80},
		{2, 10, 5, 25},
		{0, 10, 5, 0},
	}
	for _, tc := range cases {
		got := routine.TotalTime(tc.sets, tc.duration, tc.rest)
		if got != tc.want {
			t.Errorf("TotalTime(%d, %d, %d) = %d, want %d", tc.sets, tc.duration, tc.rest, got, tc.want)
		}
	}
}

func TestRoutineTotals(t *testing.T) {
	r := testutil.Routine(2,
		testutil.Exercise("A", 3, 30, 15), // 120
		testutil.Exercise("B", 2, 30, 30), // 90
	)

	if got := r.RoundDuration(); got != 210 {
		t.Errorf("RoundDuration = %d, want 210", got)
	}
	if got := r.TotalDuration(); got != 420 {
		t.Errorf("TotalDuration = %d, want 420", got)
	}
	if got := r.ExercisesPerRep(); got != 2 {
		t.Errorf("ExercisesPerRep = %d, want 2", got)
	}
	if got := r.TotalExercises(); got != 4 {
		t.Errorf("TotalExercises = %d, want 4", got)
	}
	if got := r.TotalSets(); got != 10 {
		t.Errorf("TotalSets = %d, want 10", got)
	}
	if got := r.ActiveSeconds(); got != 300 {
		t.Errorf("ActiveSeconds = %d, want 300", got)
	}
}

func TestIsNoRest(t *testing.T) {
	noRest := testutil.Routine(1, testutil.Exercise("A", 1, 5, 0), testutil.Exercise("B", 1, 3, 0))
	if !noRest.IsNoRest() {
		t.Error("IsNoRest = false, want true")
	}

	mixed := testutil.Routine(1, testutil.Exercise("A", 1, 5, 0), testutil.Exercise("B", 1, 3, 10))
	if mixed.IsNoRest() {
		t.Error("IsNoRest = true, want false")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *routine.Routine {
		return testutil.Routine(1, testutil.Exercise("A", 2, 30, 10))
	}

	cases := []struct {
		name   string
		mutate func(r *routine.Routine)
		field  string
	}{
		{"empty name", func(r *routine.Routine) { r.Name = "  " }, "name"},
		{"no exercises", func(r *routine.Routine) { r.Exercises = nil }, "exercises"},
		{"exercise without name", func(r *routine.Routine) { r.Exercises[0].Name = "" }, "exercises[0].name"},
		{"zero sets", func(r *routine.Routine) { r.Exercises[0].Sets = 0 }, "exercises[0].sets"},
		{"zero duration", func(r *routine.Routine) { r.Exercises[0].Duration = 0 }, "exercises[0].duration"},
		{"negative rest", func(r *routine.Routine) { r.Exercises[0].Rest = -1 }, "exercises[0].rest"},
		{"difficulty too low", func(r *routine.Routine) { r.Difficulty = 0 }, "difficulty"},
		{"difficulty too high", func(r *routine.Routine) { r.Difficulty = 6 }, "difficulty"},
		{"zero reps", func(r *routine.Routine) { r.Reps = 0 }, "reps"},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid routine: unexpected error: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.mutate(r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, routine.ErrInvalidRoutine) {
				t.Errorf("error %v does not wrap ErrInvalidRoutine", err)
			}
			var ve *routine.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("Field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	var r *routine.Routine
	if err := r.Validate(); !errors.Is(err, routine.ErrInvalidRoutine) {
		t.Errorf("Validate(nil) = %v, want ErrInvalidRoutine", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := testutil.Routine(1, testutil.Exercise("A", 2, 30, 10))
	b := testutil.Routine(1, testutil.Exercise("A", 2, 30, 10))

	fa, err := routine.Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fb, err := routine.Fingerprint(b)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fa != fb {
		t.Errorf("fingerprints differ for equal routines: %s vs %s", fa, fb)
	}
	if len(fa) != 16 {
		t.Errorf("fingerprint length = %d, want 16", len(fa))
	}

	b.Exercises[0].Rest = 11
	fc, _ := routine.Fingerprint(b)
	if fc == fa {
		t.Error("fingerprint unchanged after modifying rest")
	}
}

func TestHasTag(t *testing.T) {
	r := &routine.Routine{Name: "Quick HIIT", Tags: []string{"cardio", "quick"}}
	cases := []struct {
		tag  string
		want bool
	}{
		{"cardio", true},
		{"Cardio", true},
		{" quick ", true},
		{"strength", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := r.HasTag(tc.tag); got != tc.want {
			t.Errorf("HasTag(%q) = %v, want %v", tc.tag, got, tc.want)
		}
	}
}
