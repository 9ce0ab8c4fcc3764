// Package log provides structured event logging.
// This file appends workout events to log.jsonl in the data directory.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventWorkoutStarted   = "workout_started"
	EventRepCompleted     = "rep_completed"
	EventWorkoutCompleted = "workout_completed"
	EventWorkoutCancelled = "workout_cancelled"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time          time.Time `json:"time"`
	Event         string    `json:"event"`
	RunID         string    `json:"run,omitempty"`
	Routine       string    `json:"routine,omitempty"`
	Rep           int       `json:"rep,omitempty"`
	Reps          int       `json:"reps,omitempty"`
	Exercise      string    `json:"exercise,omitempty"`
	Set           int       `json:"set,omitempty"`
	ActiveSeconds int       `json:"active_seconds,omitempty"`
	TotalSets     int       `json:"total_sets,omitempty"`
	DurationMs    int64     `json:"duration_ms,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to log.jsonl inside the data dir.
// Creates dir if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(dir, "log.jsonl"),
	}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex.
func (l *Logger) Append(event LogEvent) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	// Write the JSON line followed by a newline.
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}
