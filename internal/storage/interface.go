package storage

import (
	"errors"
	"fmt"

	"taskdeck/internal/models"
)

// Errors shared by every store implementation.
var (
	ErrNotFound    = errors.New("task not found")
	ErrDuplicateID = errors.New("task with this id already exists")
)

// PersistenceError wraps a failure to read or write the persisted state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store owns the in-memory task collection and its persisted
// representation. Mutating operations persist before reporting success;
// a failed persist must leave the in-memory state equal to the last
// successfully persisted one.
type Store interface {
	// Load reads the persisted state, initializing an empty collection if
	// none exists. Unreadable or corrupt state is an error.
	Load() error

	// Persist writes the entire collection, atomically from the caller's
	// perspective: it either fully succeeds or leaves the prior persisted
	// state intact.
	Persist() error

	// Add appends a validated task. Fails with ErrDuplicateID if a task
	// with the same id is already present.
	Add(task models.Task) error

	// FindByID returns the task with the given id or ErrNotFound.
	FindByID(id string) (models.Task, error)

	// Update replaces the stored task. Fails with ErrNotFound if absent.
	Update(id string, task models.Task) error

	// SetCompleted marks the task completed. Idempotent: marking an
	// already-completed task succeeds. Fails with ErrNotFound if absent.
	SetCompleted(id string) (models.Task, error)

	// Remove deletes the task. Fails with ErrNotFound if absent.
	Remove(id string) error

	// RemoveCompleted deletes all completed tasks and returns how many
	// were removed. Removing zero tasks is not an error.
	RemoveCompleted() (int, error)

	// Tasks returns a snapshot of the collection in insertion order.
	// Callers may reorder or filter it freely.
	Tasks() []models.Task
}
