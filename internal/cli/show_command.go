package cli

import (
	"context"

	"task-manager/internal/errors"
)

// ShowCommand prints every field of a single task
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute runs the show command: show <position>
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: tm show N")
	}

	if err := c.app.loadTasks(ctx); err != nil {
		return err
	}

	index, err := c.app.resolvePosition(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}

	task, err := c.app.tasks.At(index)
	if err != nil {
		return c.app.fail("show task", err)
	}

	c.app.printf("%s\n\n%s\n\nDue Date: %s\n", task.Title, task.Description, task.DueDate)
	return nil
}
