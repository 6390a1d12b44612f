package domain

import (
	"fmt"
	"strings"
)

// Task represents a task in the domain model.
// DueDate holds a zero-padded YYYY-MM-DD string. It is compared as text,
// so lexicographic order only matches chronological order when that
// format is respected.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     string
}

// NewTask creates an unpersisted Task from raw field values.
func NewTask(title, description, dueDate string) Task {
	return Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}
}

// IsPersisted reports whether the store has assigned an identity.
func (t Task) IsPersisted() bool {
	return t.ID != 0
}

// IsValid checks that every required field is non-blank.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" &&
		strings.TrimSpace(t.Description) != "" &&
		strings.TrimSpace(t.DueDate) != ""
}

// String returns the task for display purposes.
func (t Task) String() string {
	return fmt.Sprintf("%s (due %s)", t.Title, t.DueDate)
}
