package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// OutputCommand handles the output command
type OutputCommand struct {
	app *App
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app}
}

// Execute runs the output command: output [format=csv|pdf] [file=path]
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	format := c.app.config.Commands.OutputDefaultFormat
	var path string

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.NewInvalidInputError("option", arg, "expected format=csv|pdf or file=path")
		}
		switch key {
		case "format":
			format = strings.ToLower(value)
		case "file":
			path = value
		default:
			return errors.NewInvalidInputError("option", key, "unknown option")
		}
	}

	var export func(io.Writer, []domain.Task) error
	switch format {
	case "csv":
		export = writeCSV
	case "pdf":
		export = writePDF
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}

	if err := c.app.loadTasks(ctx); err != nil {
		return err
	}
	tasks := c.app.tasks.Tasks()

	if path == "" {
		return export(c.app.out, tasks)
	}

	f, err := os.Create(path)
	if err != nil {
		if os.IsPermission(err) {
			return c.app.fail("export tasks", errors.NewPermissionError("write", path))
		}
		return c.app.fail("export tasks", errors.WrapError(err, errors.ErrorTypeInvalidInput, "cannot create "+path))
	}
	if err := export(f, tasks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	c.app.printf("Exported %d tasks to %s\n", len(tasks), path)
	return nil
}

// writeCSV writes tasks with a header row in display order
func writeCSV(w io.Writer, tasks []domain.Task) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Title", "Description", "Due Date"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			strconv.FormatInt(task.ID, 10),
			task.Title,
			task.Description,
			task.DueDate,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writePDF renders tasks as a single A4 document, one block per task
func writePDF(w io.Writer, tasks []domain.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)

	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks found", "0", "L", false)
	}
	for _, task := range tasks {
		line := fmt.Sprintf("%s  %s - %s", task.DueDate, task.Title, task.Description)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
