package preview_test

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/sebdah/goldie/v2"

	"github.com/faintdeception/hiit-cli/internal/preview"
	"github.com/faintdeception/hiit-cli/internal/routine"
	"github.com/faintdeception/hiit-cli/internal/testutil"
)

func mustParse(t *testing.T, data string, isYAML bool) *routine.Routine {
	t.Helper()
	r, err := routine.Parse([]byte(data), isYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return r
}

func TestFormatGolden(t *testing.T) {
	g := goldie.New(t)

	quick := mustParse(t, testutil.QuickRoutineJSON(), false)
	g.Assert(t, "quick-hiit", []byte(preview.Format(preview.Preview(quick))))

	tabata := mustParse(t, testutil.NoRestRoutineYAML(), true)
	g.Assert(t, "tabata-blast", []byte(preview.Format(preview.Preview(tabata))))
}

func TestPreviewTotals(t *testing.T) {
	r := testutil.Routine(2,
		testutil.Exercise("A", 3, 30, 15),
		testutil.Exercise("B", 2, 30, 30),
	)

	rep := preview.Preview(r)
	if rep.RoundSeconds != 210 {
		t.Errorf("RoundSeconds = %d, want 210", rep.RoundSeconds)
	}
	if rep.TotalSeconds != 420 {
		t.Errorf("TotalSeconds = %d, want 420", rep.TotalSeconds)
	}
	if rep.ExercisesPerRep != 2 || rep.TotalExercises != 4 {
		t.Errorf("exercises = %d per rep, %d total; want 2, 4", rep.ExercisesPerRep, rep.TotalExercises)
	}
	if len(rep.Rows) != 2 || rep.Rows[0].Total != 120 || rep.Rows[1].Total != 90 {
		t.Errorf("Rows = %+v", rep.Rows)
	}
}

func TestPreviewIsPure(t *testing.T) {
	r := mustParse(t, testutil.QuickRoutineJSON(), false)
	before := *r
	before.Exercises = append([]routine.Exercise(nil), r.Exercises...)
	before.Tags = append([]string(nil), r.Tags...)

	first := preview.Preview(r)
	second := preview.Preview(r)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Preview not deterministic:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(&before, r) {
		t.Errorf("routine mutated by Preview:\nbefore %+v\nafter  %+v", before, *r)
	}

	// The report owns its tags.
	first.Tags[0] = "changed"
	if r.Tags[0] == "changed" {
		t.Error("report shares tag storage with the routine")
	}
}

func TestFormatSingleRepOmitsTotals(t *testing.T) {
	out := preview.Format(preview.Preview(testutil.Routine(1, testutil.Exercise("A", 1, 30, 0))))
	for _, unwanted := range []string{"Reps:", "Total time:", "Exercises:"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("single-rep preview contains %q:\n%s", unwanted, out)
		}
	}
}

func TestFormatTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 40)
	out := preview.Format(preview.Preview(testutil.Routine(1, testutil.Exercise(long, 1, 30, 0))))
	if strings.Contains(out, long) {
		t.Error("long exercise name was not truncated")
	}
	if !strings.Contains(out, strings.Repeat("x", 21)+"...") {
		t.Errorf("truncated name missing from:\n%s", out)
	}
}

func TestFormatMultiByteNames(t *testing.T) {
	long := strings.Repeat("ą", 30)
	r := testutil.Routine(1,
		testutil.Exercise(long, 1, 30, 0),
		testutil.Exercise("Przysiad", 1, 30, 0),
		testutil.Exercise("Żabki", 1, 30, 0),
	)
	out := preview.Format(preview.Preview(r))

	if !utf8.ValidString(out) {
		t.Fatalf("preview is not valid UTF-8:\n%q", out)
	}
	if !strings.Contains(out, strings.Repeat("ą", 21)+"...") {
		t.Errorf("truncated name missing from:\n%s", out)
	}

	// Every exercise row puts the Sets column at the same display offset.
	var offsets []int
	for _, line := range strings.Split(out, "\n") {
		if !isExerciseRow(line) {
			continue
		}
		idx := strings.Index(line, "    1 ")
		if idx < 0 {
			t.Fatalf("row without sets column: %q", line)
		}
		offsets = append(offsets, runewidth.StringWidth(line[:idx]))
	}
	if len(offsets) != 3 {
		t.Fatalf("got %d exercise rows, want 3:\n%s", len(offsets), out)
	}
	for i, off := range offsets {
		if off != offsets[0] {
			t.Errorf("row %d sets column at %d, want %d", i+1, off, offsets[0])
		}
	}
}

// isExerciseRow matches lines that start with a right-aligned row number.
func isExerciseRow(line string) bool {
	return len(line) > 5 && line[2] >= '1' && line[2] <= '9' && line[3:5] == "  "
}

func TestPad(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"Plank", 8, "Plank   "},
		{"Żabki", 6, "Żabki "},
		{"abcdefghij", 8, "abcde..."},
		{"ąąąąąąąąąą", 8, "ąąąąą..."},
	}
	for _, tc := range cases {
		if got := preview.Pad(tc.in, tc.width); got != tc.want {
			t.Errorf("Pad(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m0s"},
		{125, "2m5s"},
		{3723, "1h2m3s"},
	}
	for _, tc := range cases {
		if got := preview.FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
