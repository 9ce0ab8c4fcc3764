package routine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no routine file matches a name.
var ErrNotFound = errors.New("routine not found")

// extensions lists the routine file extensions in lookup order.
var extensions = []string{".json", ".yaml", ".yml"}

// Entry is one routine file found in a directory. Err is set when the file
// could not be loaded; Routine is nil in that case.
type Entry struct {
	Slug    string
	Path    string
	Routine *Routine
	Err     error
}

// Parse decodes and validates routine data. YAML input is converted to JSON
// before schema validation. Reps defaults to 1 when omitted.
func Parse(data []byte, isYAML bool) (*Routine, error) {
	if isYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		jb, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("converting yaml: %w", err)
		}
		data = jb
	}

	if err := validateSchema(data); err != nil {
		return nil, err
	}

	r := Routine{Reps: 1}
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing routine: %w", err)
	}
	r.Tags = normalizeTags(r.Tags)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadFile reads the routine at path.
func LoadFile(path string) (*Routine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading routine: %w", err)
	}
	r, err := Parse(data, isYAMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// Find resolves name to a routine file. name may be a path to an existing
// file, or a file name with or without extension inside dir.
func Find(dir, name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}

	if ext := filepath.Ext(name); isRoutineExt(ext) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load finds and loads the named routine from dir.
func Load(dir, name string) (*Routine, error) {
	path, err := Find(dir, name)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// List loads every routine file in dir, sorted by slug. A missing directory
// yields an empty list. Files that fail to load are returned with Err set.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading routines directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !isRoutineExt(filepath.Ext(de.Name())) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		r, loadErr := LoadFile(path)
		entries = append(entries, Entry{
			Slug:    strings.TrimSuffix(de.Name(), filepath.Ext(de.Name())),
			Path:    path,
			Routine: r,
			Err:     loadErr,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Slug < entries[j].Slug
	})
	return entries, nil
}

// Save writes r as indented JSON to dir/slug.json.
// Creates dir if it does not exist.
func Save(dir, slug string, r *Routine) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating routines directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling routine: %w", err)
	}
	path := filepath.Join(dir, slug+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing routine: %w", err)
	}
	return nil
}

func validateSchema(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(Schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("parsing routine: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidRoutine, collect(result.Errors()))
	}
	return nil
}

func collect(errs []gojsonschema.ResultError) string {
	var buf bytes.Buffer
	for i, e := range errs {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(e.String())
	}
	return buf.String()
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isRoutineExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
