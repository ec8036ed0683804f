// Package query filters and orders task snapshots for display. It never
// mutates the store's collection.
package query

import (
	"fmt"
	"sort"

	"taskdeck/internal/models"
)

// SortKey selects the field List orders by.
type SortKey string

const (
	ByDueDate   SortKey = "dueDate"
	ByPriority  SortKey = "priority"
	ByCreatedAt SortKey = "createdAt"
	ByCompleted SortKey = "completed"
)

// ParseSortKey converts a user-supplied sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case ByDueDate, ByPriority, ByCreatedAt, ByCompleted:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q: expected dueDate, priority, createdAt or completed", s)
}

// Apply filters then orders a snapshot. Completed tasks are dropped
// unless includeCompleted is set. Sorting is ascending and stable: tasks
// that compare equal keep their original relative order, which matters
// for the chronological and boolean keys where the comparison is not a
// full ordering.
func Apply(tasks []models.Task, key SortKey, includeCompleted bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !includeCompleted && t.Completed {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case ByPriority:
			return a.Priority < b.Priority
		case ByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		case ByCompleted:
			return !a.Completed && b.Completed
		default: // ByDueDate
			return a.DueDate.Time.Before(b.DueDate.Time)
		}
	})
	return out
}
