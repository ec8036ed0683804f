package models

import (
	"fmt"
	"strings"
)

// ValidationError names the field that failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks a candidate task against the field constraints. It runs
// before every insert and before an edited task overwrites the stored
// version; a failure must abort the operation without touching the store.
func Validate(t Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if t.DueDate.IsZero() {
		return &ValidationError{Field: "dueDate", Reason: "must be a valid date"}
	}
	if !t.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "must be 1 (high), 2 (medium) or 3 (low)"}
	}
	if t.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if t.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "must be set"}
	}
	return nil
}
