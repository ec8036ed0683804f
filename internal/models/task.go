package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Priority represents the importance level of a task. Lower values are
// more important, so ascending sorts put urgent work first.
type Priority int

const (
	High   Priority = 1
	Medium Priority = 2
	Low    Priority = 3
)

// String returns the string representation of Priority.
func (p Priority) String() string {
	switch p {
	case High:
		return "High"
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the defined levels.
func (p Priority) Valid() bool {
	return p >= High && p <= Low
}

// ParsePriority converts a numeric priority selection (1-3) to a Priority.
func ParsePriority(n int) (Priority, error) {
	p := Priority(n)
	if !p.Valid() {
		return 0, fmt.Errorf("priority must be 1 (high), 2 (medium) or 3 (low), got %d", n)
	}
	return p, nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date. It serializes as "YYYY-MM-DD" rather than a
// full timestamp.
type Date struct {
	time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// Task represents a single to-do item. ID and CreatedAt are assigned at
// creation and never change afterwards.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     Date      `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
}

// IsOverdue reports whether the task's due date has passed without the
// task being completed.
func (t Task) IsOverdue() bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Time.Before(time.Now().Truncate(24 * time.Hour))
}
