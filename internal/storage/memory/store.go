// Package memory implements storage.Store without touching disk. It
// backs throwaway sessions (-memory) and tests.
package memory

import (
	"slices"

	"taskdeck/internal/models"
	"taskdeck/internal/storage"
)

// Store holds tasks in insertion order for the lifetime of the process.
type Store struct {
	tasks []models.Task
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Load is a no-op: there is no persisted state to read.
func (s *Store) Load() error { return nil }

// Persist is a no-op: the collection lives only in memory.
func (s *Store) Persist() error { return nil }

func (s *Store) Add(task models.Task) error {
	if s.indexOf(task.ID) >= 0 {
		return storage.ErrDuplicateID
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *Store) FindByID(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, storage.ErrNotFound
	}
	return s.tasks[i], nil
}

func (s *Store) Update(id string, task models.Task) error {
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	s.tasks[i] = task
	return nil
}

func (s *Store) SetCompleted(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, storage.ErrNotFound
	}
	s.tasks[i].Completed = true
	return s.tasks[i], nil
}

func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *Store) RemoveCompleted() (int, error) {
	remaining := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			remaining = append(remaining, t)
		}
	}
	removed := len(s.tasks) - len(remaining)
	s.tasks = remaining
	return removed, nil
}

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
