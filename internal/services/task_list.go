package services

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
)

// TaskList is the working set of tasks ordered by due date. It is not safe
// for concurrent use.
type TaskList struct {
	repo   sqlite.Repository
	mapper *domain.TaskMapper
	logger logrus.FieldLogger
	tasks  []domain.Task
}

// NewTaskList creates an empty TaskList backed by repo. Call Load to
// populate it.
func NewTaskList(repo sqlite.Repository, logger logrus.FieldLogger) *TaskList {
	if logger == nil {
		logger = logging.Logger()
	}
	return &TaskList{
		repo:   repo,
		mapper: domain.NewTaskMapper(),
		logger: logger.WithField("component", "task_list"),
		tasks:  []domain.Task{},
	}
}

// NewServiceContainer wires the services around a single repository
func NewServiceContainer(repo sqlite.Repository, logger logrus.FieldLogger) *ServiceContainer {
	return &ServiceContainer{
		TaskList: NewTaskList(repo, logger),
	}
}

// Load reads every task from the store. The previous working set is kept
// when the read fails.
func (l *TaskList) Load(ctx context.Context) error {
	rows, err := l.repo.ListTasks(ctx)
	if err != nil {
		return err
	}

	tasks := l.mapper.FromDatabaseSlice(rows)
	sortByDueDate(tasks)
	l.tasks = tasks

	l.logger.WithField("count", len(tasks)).Debug("task list loaded")
	return nil
}

// Add persists a new task and places it in due-date order
func (l *TaskList) Add(ctx context.Context, title, description, dueDate string) (int64, error) {
	id, err := l.repo.CreateTask(ctx, title, description, dueDate)
	if err != nil {
		return 0, err
	}

	task := domain.NewTask(title, description, dueDate)
	task.ID = id
	l.tasks = append(l.tasks, task)
	sortByDueDate(l.tasks)

	l.logger.WithField("id", id).Info("task added")
	return id, nil
}

// Edit overwrites the task at position. The caller must pass the id it saw
// at that position; a mismatch means the position is stale and nothing is
// written.
func (l *TaskList) Edit(ctx context.Context, id int64, position int, title, description, dueDate string) (bool, error) {
	current, err := l.At(position)
	if err != nil {
		return false, err
	}
	if current.ID != id {
		return false, errors.NewInvalidInputError("position", position,
			"task at this position does not match the task being edited").
			WithContext("expected_id", id).
			WithContext("actual_id", current.ID)
	}

	affected, err := l.repo.UpdateTask(ctx, id, title, description, dueDate)
	if err != nil {
		return false, err
	}
	if affected < 1 {
		l.logger.WithField("id", id).Warn("task no longer exists in store")
		return false, nil
	}

	updated := domain.NewTask(title, description, dueDate)
	updated.ID = id
	l.tasks[position] = updated
	sortByDueDate(l.tasks)

	l.logger.WithField("id", id).Info("task updated")
	return true, nil
}

// RemoveAt deletes the task at position. The working set only changes once
// the store has confirmed the delete.
func (l *TaskList) RemoveAt(ctx context.Context, position int) error {
	task, err := l.At(position)
	if err != nil {
		return err
	}

	if err := l.repo.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	l.tasks = append(l.tasks[:position], l.tasks[position+1:]...)

	l.logger.WithField("id", task.ID).Info("task deleted")
	return nil
}

// Tasks returns a copy of the working set in display order
func (l *TaskList) Tasks() []domain.Task {
	out := make([]domain.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// At returns the task at a 0-based position
func (l *TaskList) At(position int) (domain.Task, error) {
	if position < 0 || position >= len(l.tasks) {
		return domain.Task{}, errors.NewInvalidInputError("position", position, "position is out of range")
	}
	return l.tasks[position], nil
}

// Len returns the number of tasks in the working set
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// sortByDueDate orders tasks by their due date text, keeping the relative
// order of tasks that share a date.
func sortByDueDate(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate < tasks[j].DueDate
	})
}

var _ TaskListController = (*TaskList)(nil)
