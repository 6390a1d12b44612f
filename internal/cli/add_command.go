package cli

import (
	"context"

	"task-manager/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command: add <title> <description> <due-date>
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.NewInvalidInputError("command", "add", `usage: tm add "title" "description" YYYY-MM-DD`)
	}

	if err := c.app.loadTasks(ctx); err != nil {
		return err
	}

	input, err := c.app.validator.ValidateTask(args[0], args[1], args[2])
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	id, err := c.app.tasks.Add(ctx, input.Title, input.Description, input.DueDate)
	if err != nil {
		return c.app.fail("add task", err)
	}

	c.app.printf("Task added (id %d)\n", id)
	return nil
}
