// Package file implements storage.Store on top of a single JSON file.
// The whole collection is loaded at startup and rewritten after every
// mutation; there is no partial or incremental persistence.
package file

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-pkgz/lgr"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"taskdeck/internal/models"
	"taskdeck/internal/storage"
)

//go:embed schema.json
var schemaJSON string

var docSchema = jsonschema.MustCompileString("tasks.json", schemaJSON)

// document is the persisted layout: one object holding the ordered task
// list. An absent or empty tasks field reads as an empty collection.
type document struct {
	Tasks []models.Task `json:"tasks"`
}

// Store keeps tasks in insertion order and mirrors every mutation to the
// data file before committing it in memory.
type Store struct {
	path  string
	tasks []models.Task
}

// New creates a file store backed by the given path. Call Load before
// any other operation.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the data file. A missing file starts an empty collection;
// an unreadable, unparsable, or schema-invalid one is an error the
// caller should treat as fatal.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = nil
			lgr.Printf("[DEBUG] no data file at %s, starting with empty collection", s.path)
			return nil
		}
		return &storage.PersistenceError{Op: "load", Err: err}
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &storage.PersistenceError{Op: "load", Err: fmt.Errorf("parse %s: %w", s.path, err)}
	}
	if err := docSchema.Validate(raw); err != nil {
		return &storage.PersistenceError{Op: "load", Err: fmt.Errorf("%s does not match the expected layout: %w", s.path, err)}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &storage.PersistenceError{Op: "load", Err: fmt.Errorf("parse %s: %w", s.path, err)}
	}
	s.tasks = doc.Tasks
	lgr.Printf("[DEBUG] loaded %d tasks from %s", len(s.tasks), s.path)
	return nil
}

// Persist writes the whole collection to a temp file in the same
// directory and renames it over the data file, so a crash mid-write
// leaves the previous state intact.
func (s *Store) Persist() error {
	data, err := json.MarshalIndent(document{Tasks: s.tasks}, "", "  ")
	if err != nil {
		return &storage.PersistenceError{Op: "persist", Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &storage.PersistenceError{Op: "persist", Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return &storage.PersistenceError{Op: "persist", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &storage.PersistenceError{Op: "persist", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &storage.PersistenceError{Op: "persist", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &storage.PersistenceError{Op: "persist", Err: err}
	}
	lgr.Printf("[DEBUG] persisted %d tasks to %s", len(s.tasks), s.path)
	return nil
}

// Add appends the task and persists. The duplicate check should never
// trip given how ids are generated, but it is checked, not assumed.
func (s *Store) Add(task models.Task) error {
	if s.indexOf(task.ID) >= 0 {
		return storage.ErrDuplicateID
	}
	s.tasks = append(s.tasks, task)
	if err := s.Persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return err
	}
	return nil
}

// FindByID returns the task with the given id.
func (s *Store) FindByID(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, storage.ErrNotFound
	}
	return s.tasks[i], nil
}

// Update replaces the stored task and persists.
func (s *Store) Update(id string, task models.Task) error {
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	prev := s.tasks[i]
	s.tasks[i] = task
	if err := s.Persist(); err != nil {
		s.tasks[i] = prev
		return err
	}
	return nil
}

// SetCompleted marks the task completed and persists. Marking an
// already-completed task succeeds without rewriting the file.
func (s *Store) SetCompleted(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, storage.ErrNotFound
	}
	if s.tasks[i].Completed {
		return s.tasks[i], nil
	}
	s.tasks[i].Completed = true
	if err := s.Persist(); err != nil {
		s.tasks[i].Completed = false
		return models.Task{}, err
	}
	return s.tasks[i], nil
}

// Remove deletes the task and persists.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	prev := slices.Clone(s.tasks)
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if err := s.Persist(); err != nil {
		s.tasks = prev
		return err
	}
	return nil
}

// RemoveCompleted deletes every completed task and persists, returning
// the number removed. Nothing to remove is a zero-count success.
func (s *Store) RemoveCompleted() (int, error) {
	prev := s.tasks
	remaining := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			remaining = append(remaining, t)
		}
	}
	removed := len(prev) - len(remaining)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = remaining
	if err := s.Persist(); err != nil {
		s.tasks = prev
		return 0, err
	}
	return removed, nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []models.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
