// Package schedule loads weekly workout schedules and answers which
// routines are planned for a given weekday.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchedule is returned for schedule files that do not describe a week.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule maps weekdays to the routines planned for them.
// Day keys are lowercase English weekday names.
type Schedule struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Days        map[string][]string `json:"days" yaml:"days"`
}

// Entry is one schedule file found in a directory. Err is set when the file
// could not be loaded.
type Entry struct {
	Slug     string
	Path     string
	Schedule *Schedule
	Err      error
}

// Match is a schedule with the routines it plans for one day.
type Match struct {
	Schedule string
	Routines []string
}

// Weekdays lists the day keys from Sunday to Saturday.
var Weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayKey returns the day key for d.
func DayKey(d time.Weekday) string {
	return Weekdays[d]
}

// Parse decodes a schedule. Day keys are lowercased and checked.
func Parse(data []byte, isYAML bool) (*Schedule, error) {
	var s Schedule
	var err error
	if isYAML {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}

	days := make(map[string][]string, len(s.Days))
	for key, routines := range s.Days {
		day := strings.ToLower(strings.TrimSpace(key))
		if !isWeekday(day) {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, key)
		}
		for _, name := range routines {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%w: empty routine name on %s", ErrInvalidSchedule, day)
			}
		}
		days[day] = append(days[day], routines...)
	}
	s.Days = days

	if strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSchedule)
	}
	return &s, nil
}

// LoadFile reads the schedule at path.
func LoadFile(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	s, err := Parse(data, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// List loads every schedule file in dir, sorted by slug. A missing directory
// yields an empty list.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading schedules directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if de.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, de.Name())
		s, loadErr := LoadFile(path)
		entries = append(entries, Entry{
			Slug:     strings.TrimSuffix(de.Name(), filepath.Ext(de.Name())),
			Path:     path,
			Schedule: s,
			Err:      loadErr,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Slug < entries[j].Slug
	})
	return entries, nil
}

// For returns the routines planned for day.
func (s *Schedule) For(day time.Weekday) []string {
	return s.Days[DayKey(day)]
}

// ForDay collects the routines each valid schedule plans for day.
// Schedules with nothing planned are left out.
func ForDay(entries []Entry, day time.Weekday) []Match {
	var matches []Match
	for _, e := range entries {
		if e.Schedule == nil {
			continue
		}
		if routines := e.Schedule.For(day); len(routines) > 0 {
			matches = append(matches, Match{Schedule: e.Schedule.Name, Routines: routines})
		}
	}
	return matches
}

// Save writes s as indented JSON to dir/slug.json.
func Save(dir, slug string, s *Schedule) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating schedules directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling schedule: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, slug+".json"), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
