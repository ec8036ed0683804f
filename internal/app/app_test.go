package app

import (
	"errors"
	"testing"

	"taskdeck/internal/models"
	"taskdeck/internal/query"
	"taskdeck/internal/storage"
	"taskdeck/internal/storage/memory"
)

func newApp() *App {
	return New(memory.New())
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	a := newApp()
	due := mustDate(t, "2024-01-01")

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		task, err := a.Add("task", "", due, models.Medium)
		if err != nil {
			t.Fatalf("Add #%d failed: %v", i, err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q on Add #%d", task.ID, i)
		}
		seen[task.ID] = true
	}
}

func TestAddValidationGate(t *testing.T) {
	due := mustDate(t, "2024-01-01")

	tests := []struct {
		name     string
		title    string
		due      models.Date
		priority models.Priority
	}{
		{name: "empty title", title: "", due: due, priority: models.Medium},
		{name: "zero due date", title: "ok", due: models.Date{}, priority: models.Medium},
		{name: "priority out of range", title: "ok", due: due, priority: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp()
			_, err := a.Add(tt.title, "", tt.due, tt.priority)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Add: got %v, want *models.ValidationError", err)
			}
			if got := len(a.List(query.ByCreatedAt, true)); got != 0 {
				t.Errorf("store changed by failed Add: %d tasks", got)
			}
		})
	}
}

func TestUpdateMergesAndPreservesIdentity(t *testing.T) {
	a := newApp()
	created, err := a.Add("original", "desc", mustDate(t, "2024-01-01"), models.Medium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	title := "renamed"
	prio := models.High
	got, err := a.Update(created.ID, TaskUpdate{Title: &title, Priority: &prio})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("id changed: got %q, want %q", got.ID, created.ID)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed: got %v, want %v", got.CreatedAt, created.CreatedAt)
	}
	if got.Title != "renamed" || got.Priority != models.High {
		t.Errorf("set fields not applied: %+v", got)
	}
	if got.Description != "desc" || !got.DueDate.Equal(created.DueDate.Time) {
		t.Errorf("unset fields changed: %+v", got)
	}
}

func TestUpdateValidationGate(t *testing.T) {
	a := newApp()
	created, err := a.Add("original", "", mustDate(t, "2024-01-01"), models.Medium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	empty := "  "
	_, err = a.Update(created.ID, TaskUpdate{Title: &empty})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update: got %v, want *models.ValidationError", err)
	}

	stored := a.List(query.ByCreatedAt, true)
	if len(stored) != 1 || stored[0].Title != "original" {
		t.Errorf("store changed by failed Update: %+v", stored)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	a := newApp()
	title := "x"
	if _, err := a.Update("missing", TaskUpdate{Title: &title}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update: got %v, want ErrNotFound", err)
	}
}

func TestCompleteIdempotent(t *testing.T) {
	a := newApp()
	created, err := a.Add("task", "", mustDate(t, "2024-01-01"), models.Medium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		got, err := a.Complete(created.ID)
		if err != nil {
			t.Fatalf("Complete #%d failed: %v", i+1, err)
		}
		if !got.Completed {
			t.Errorf("Complete #%d: completed is false", i+1)
		}
	}

	if _, err := a.Complete("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Complete unknown id: got %v, want ErrNotFound", err)
	}
}

func TestEndToEndScenario(t *testing.T) {
	a := newApp()

	t1, err := a.Add("Buy milk", "", mustDate(t, "2024-01-01"), models.Medium)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if t1.Completed {
		t.Error("new task is completed")
	}

	all := a.List(query.ByDueDate, true)
	if len(all) != 1 || all[0].ID != t1.ID {
		t.Fatalf("List: got %+v, want [%s]", all, t1.ID)
	}

	done, err := a.Complete(t1.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !done.Completed {
		t.Error("Complete did not set the flag")
	}

	if pending := a.List(query.ByPriority, false); len(pending) != 0 {
		t.Errorf("List pending: got %d tasks, want 0", len(pending))
	}

	n, err := a.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if n != 1 {
		t.Errorf("ClearCompleted count: got %d, want 1", n)
	}
	if rest := a.List(query.ByDueDate, true); len(rest) != 0 {
		t.Errorf("List after clear: got %d tasks, want 0", len(rest))
	}
}
