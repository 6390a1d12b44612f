package cli

import (
	"context"

	"task-manager/internal/errors"
)

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command: edit <position> <title> <description> <due-date>
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errors.NewInvalidInputError("command", "edit", `usage: tm edit N "title" "description" YYYY-MM-DD`)
	}

	if err := c.app.loadTasks(ctx); err != nil {
		return err
	}

	index, err := c.app.resolvePosition(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	input, err := c.app.validator.ValidateTask(args[1], args[2], args[3])
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	current, err := c.app.tasks.At(index)
	if err != nil {
		return c.app.fail("edit task", err)
	}

	updated, err := c.app.tasks.Edit(ctx, current.ID, index, input.Title, input.Description, input.DueDate)
	if err != nil {
		return c.app.fail("edit task", err)
	}

	if !updated {
		c.app.printf("Couldn't update task!\n")
		return nil
	}

	c.app.printf("Task updated successfully\n")
	return nil
}
