package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite-backed persistence for runs.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		routine TEXT NOT NULL,
		fingerprint TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		planned_seconds INTEGER DEFAULT 0,
		active_seconds INTEGER DEFAULT 0,
		total_sets INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Record inserts run. An empty ID is filled with a new UUID and zero times
// default to now. Times are stored in UTC.
func (s *Store) Record(run *Run) error {
	if run.Routine == "" {
		return errors.New("record run: routine name is required")
	}
	if run.Outcome != OutcomeCompleted && run.Outcome != OutcomeCancelled {
		return fmt.Errorf("record run: unknown outcome %q", run.Outcome)
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = now
	}
	run.StartedAt = run.StartedAt.UTC()
	run.EndedAt = run.EndedAt.UTC()

	_, err := s.db.Exec(
		`INSERT INTO runs (id, routine, fingerprint, outcome, started_at, ended_at,
		                   planned_seconds, active_seconds, total_sets)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Routine, run.Fingerprint, string(run.Outcome), run.StartedAt, run.EndedAt,
		run.PlannedSeconds, run.ActiveSeconds, run.TotalSets,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID. Returns nil, nil when no such run exists.
func (s *Store) Get(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, routine, fingerprint, outcome, started_at, ended_at,
		        planned_seconds, active_seconds, total_sets
		 FROM runs WHERE id = ?`,
		id,
	)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	return run, nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all runs.
func (s *Store) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, routine, fingerprint, outcome, started_at, ended_at,
		        planned_seconds, active_seconds, total_sets
		 FROM runs
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return runs, nil
}

// Stats aggregates runs. An empty routine name aggregates every run.
func (s *Store) Stats(routineName string) (Stats, error) {
	var st Stats
	row := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'cancelled' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(active_seconds), 0)
		 FROM runs
		 WHERE ? = '' OR routine = ?`,
		routineName, routineName,
	)
	if err := row.Scan(&st.Runs, &st.Completed, &st.Cancelled, &st.ActiveSeconds); err != nil {
		return Stats{}, fmt.Errorf("scan stats: %w", err)
	}
	if st.Runs == 0 {
		return st, nil
	}

	row = s.db.QueryRow(
		`SELECT started_at FROM runs
		 WHERE ? = '' OR routine = ?
		 ORDER BY started_at DESC
		 LIMIT 1`,
		routineName, routineName,
	)
	if err := row.Scan(&st.LastRun); err != nil {
		return Stats{}, fmt.Errorf("scan last run: %w", err)
	}

	return st, nil
}

// PruneOlderThan removes runs that started more than maxAgeDays before now.
// If dryRun is true, nothing is deleted and only the count is returned.
func (s *Store) PruneOlderThan(maxAgeDays int, now time.Time, dryRun bool) (int, error) {
	if maxAgeDays <= 0 {
		return 0, nil
	}
	cutoff := now.UTC().AddDate(0, 0, -maxAgeDays)

	if dryRun {
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE started_at < ?`, cutoff).Scan(&n); err != nil {
			return 0, fmt.Errorf("count old runs: %w", err)
		}
		return n, nil
	}

	result, err := s.db.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return int(n), nil
}

// PruneKeepRecent removes all runs except the most recent keep runs.
func (s *Store) PruneKeepRecent(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := s.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var outcome string
	err := sc.Scan(&run.ID, &run.Routine, &run.Fingerprint, &outcome, &run.StartedAt, &run.EndedAt,
		&run.PlannedSeconds, &run.ActiveSeconds, &run.TotalSets)
	if err != nil {
		return nil, err
	}
	run.Outcome = Outcome(outcome)
	return &run, nil
}
