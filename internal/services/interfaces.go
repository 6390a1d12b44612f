package services

import (
	"context"

	"task-manager/internal/domain"
)

// TaskListController owns the in-memory working set of tasks shown to the
// user and keeps it in step with the task store. Positions are 0-based
// indexes into the due-date ordering produced by Load.
type TaskListController interface {
	// Load replaces the working set with the store's contents, sorted by due date
	Load(ctx context.Context) error

	// Add persists a new task and inserts it into the working set
	Add(ctx context.Context, title, description, dueDate string) (int64, error)

	// Edit overwrites the task with the given id found at position.
	// It reports false when the store no longer holds that id.
	Edit(ctx context.Context, id int64, position int, title, description, dueDate string) (bool, error)

	// RemoveAt deletes the task at position from the store and the working set
	RemoveAt(ctx context.Context, position int) error

	// Read access for presentation
	Tasks() []domain.Task
	At(position int) (domain.Task, error)
	Len() int
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskList TaskListController
}
