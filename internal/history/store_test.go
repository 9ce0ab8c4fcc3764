package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var base = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

func record(t *testing.T, s *Store, name string, outcome Outcome, started time.Time, active int) *Run {
	t.Helper()
	run := &Run{
		Routine:        name,
		Fingerprint:    "abc123",
		Outcome:        outcome,
		StartedAt:      started,
		EndedAt:        started.Add(10 * time.Minute),
		PlannedSeconds: 600,
		ActiveSeconds:  active,
		TotalSets:      5,
	}
	require.NoError(t, s.Record(run))
	return run
}

func TestRecordAndGet(t *testing.T) {
	s := newTestStore(t)

	run := record(t, s, "Quick HIIT", OutcomeCompleted, base, 300)
	assert.NotEmpty(t, run.ID)

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Quick HIIT", got.Routine)
	assert.Equal(t, OutcomeCompleted, got.Outcome)
	assert.True(t, got.StartedAt.Equal(base))
	assert.Equal(t, 10*time.Minute, got.Duration())
	assert.Equal(t, 300, got.ActiveSeconds)
	assert.Equal(t, 5, got.TotalSets)
	assert.Equal(t, "abc123", got.Fingerprint)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecordRejectsBadRuns(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Record(&Run{Outcome: OutcomeCompleted}))
	assert.Error(t, s.Record(&Run{Routine: "R", Outcome: "paused"}))
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	record(t, s, "A", OutcomeCompleted, base, 100)
	record(t, s, "B", OutcomeCancelled, base.Add(time.Hour), 50)
	record(t, s, "C", OutcomeCompleted, base.Add(2*time.Hour), 100)

	runs, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "C", runs[0].Routine)
	assert.Equal(t, "B", runs[1].Routine)

	all, err := s.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.Stats("")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty)

	record(t, s, "A", OutcomeCompleted, base, 100)
	record(t, s, "A", OutcomeCancelled, base.Add(time.Hour), 40)
	record(t, s, "B", OutcomeCompleted, base.Add(2*time.Hour), 200)

	all, err := s.Stats("")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Runs)
	assert.Equal(t, 2, all.Completed)
	assert.Equal(t, 1, all.Cancelled)
	assert.Equal(t, 340, all.ActiveSeconds)
	assert.True(t, all.LastRun.Equal(base.Add(2*time.Hour)))

	a, err := s.Stats("A")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Runs)
	assert.Equal(t, 140, a.ActiveSeconds)
	assert.True(t, a.LastRun.Equal(base.Add(time.Hour)))
}

func TestPruneOlderThan(t *testing.T) {
	s := newTestStore(t)
	now := base.AddDate(0, 0, 100)
	record(t, s, "old", OutcomeCompleted, base, 100)
	record(t, s, "recent", OutcomeCompleted, now.AddDate(0, 0, -1), 100)

	n, err := s.PruneOlderThan(90, now, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	runs, _ := s.List(0)
	assert.Len(t, runs, 2, "dry run must not delete")

	n, err = s.PruneOlderThan(90, now, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	runs, _ = s.List(0)
	require.Len(t, runs, 1)
	assert.Equal(t, "recent", runs[0].Routine)

	n, err = s.PruneOlderThan(0, now, false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPruneKeepRecent(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		record(t, s, "R", OutcomeCompleted, base.Add(time.Duration(i)*time.Hour), 10)
	}

	n, err := s.PruneKeepRecent(2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	runs, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(4*time.Hour)))
}
