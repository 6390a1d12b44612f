package cli

import (
	"bufio"
	"context"
	"strings"

	"task-manager/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command. With a position it deletes that task;
// without one it prompts for a selection.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tm delete [N]")
	}

	if err := c.app.loadTasks(ctx); err != nil {
		return err
	}

	if len(args) == 1 {
		return c.deleteAt(ctx, args[0])
	}
	return c.deleteInteractive(ctx)
}

// deleteInteractive lists the tasks and reads a selection from the app input
func (c *DeleteCommand) deleteInteractive(ctx context.Context) error {
	tasks := c.app.tasks.Tasks()
	if len(tasks) == 0 {
		c.app.printf("No tasks found to delete.\n")
		return nil
	}

	c.app.printf("Select a task to delete:\n")
	for i, task := range tasks {
		c.app.printf("%d. [%s] %s\n", i+1, task.DueDate, task.Title)
	}
	c.app.printf("Enter number to delete, or 'q' to quit: ")

	scanner := bufio.NewScanner(c.app.in)
	var input string
	if scanner.Scan() {
		input = strings.TrimSpace(scanner.Text())
	}
	if input == "" || strings.EqualFold(input, "q") {
		c.app.printf("Delete cancelled.\n")
		return nil
	}

	return c.deleteAt(ctx, input)
}

func (c *DeleteCommand) deleteAt(ctx context.Context, arg string) error {
	index, err := c.app.resolvePosition(arg)
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	task, err := c.app.tasks.At(index)
	if err != nil {
		return c.app.fail("delete task", err)
	}

	if err := c.app.tasks.RemoveAt(ctx, index); err != nil {
		return c.app.fail("delete task", err)
	}

	c.app.printf("Deleted task: %s\n", task.Title)
	return nil
}
