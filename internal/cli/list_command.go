package cli

import (
	"context"

	"task-manager/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "list", "usage: tm list")
	}

	if err := c.app.loadTasks(ctx); err != nil {
		return err
	}

	tasks := c.app.tasks.Tasks()
	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}

	// positions printed here are the ones show, edit and delete accept
	for i, task := range tasks {
		c.app.printf("%d. [%s] %s\n", i+1, task.DueDate, task.Title)
	}
	return nil
}
