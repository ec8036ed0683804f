// Package app implements the command operations. Each one coordinates
// validation, the store, and the query engine to satisfy a single user
// intent; all inputs arrive already collected by the caller.
package app

import (
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"taskdeck/internal/models"
	"taskdeck/internal/query"
	"taskdeck/internal/storage"
)

// App runs command operations against an explicit store instance.
type App struct {
	store storage.Store
}

// New creates an App over the given store.
func New(store storage.Store) *App {
	return &App{store: store}
}

// newID derives an id from the creation instant; the uuid suffix keeps
// ids unique under rapid successive Adds.
func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// Add builds a task from caller-supplied fields, assigns its id and
// creation time, validates it, and inserts it into the store.
func (a *App) Add(title, description string, due models.Date, priority models.Priority) (models.Task, error) {
	task := models.Task{
		ID:          newID(),
		Title:       title,
		Description: description,
		DueDate:     due,
		CreatedAt:   time.Now(),
		Priority:    priority,
	}
	if err := models.Validate(task); err != nil {
		return models.Task{}, err
	}
	if err := a.store.Add(task); err != nil {
		return models.Task{}, err
	}
	lgr.Printf("[INFO] added task %s %q", task.ID, task.Title)
	return task, nil
}

// List returns an ordered snapshot of the collection. It never mutates
// the store.
func (a *App) List(key query.SortKey, includeCompleted bool) []models.Task {
	return query.Apply(a.store.Tasks(), key, includeCompleted)
}

// TaskUpdate carries the fields an Update may change. Nil fields keep
// their stored values; id and creation time are never touched.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *models.Date
	Priority    *models.Priority
}

// Update merges the set fields into the stored task, validates the
// result, and replaces the stored version.
func (a *App) Update(id string, upd TaskUpdate) (models.Task, error) {
	task, err := a.store.FindByID(id)
	if err != nil {
		return models.Task{}, err
	}
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.DueDate != nil {
		task.DueDate = *upd.DueDate
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	if err := models.Validate(task); err != nil {
		return models.Task{}, err
	}
	if err := a.store.Update(id, task); err != nil {
		return models.Task{}, err
	}
	lgr.Printf("[INFO] updated task %s", id)
	return task, nil
}

// Complete marks the task completed. Completing an already-completed
// task is a no-op success; an unknown id is ErrNotFound.
func (a *App) Complete(id string) (models.Task, error) {
	task, err := a.store.SetCompleted(id)
	if err != nil {
		return models.Task{}, err
	}
	lgr.Printf("[INFO] completed task %s", id)
	return task, nil
}

// Remove deletes the task. Confirmation is the caller layer's job.
func (a *App) Remove(id string) error {
	if err := a.store.Remove(id); err != nil {
		return err
	}
	lgr.Printf("[INFO] removed task %s", id)
	return nil
}

// ClearCompleted deletes all completed tasks and returns the count.
func (a *App) ClearCompleted() (int, error) {
	n, err := a.store.RemoveCompleted()
	if err != nil {
		return 0, err
	}
	lgr.Printf("[INFO] cleared %d completed tasks", n)
	return n, nil
}
