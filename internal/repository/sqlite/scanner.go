package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row. The text columns are
// nullable in the schema; NULL reads back as an empty string.
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var title, description, dueDate sql.NullString

	err := scanner.Scan(&task.ID, &title, &description, &dueDate)
	if err != nil {
		return nil, err
	}

	task.Title = title.String
	task.Description = description.String
	task.DueDate = dueDate.String
	return task, nil
}

// ScanTasks scans every remaining row. It never returns a nil slice on success.
func ScanTasks(rows Rows) ([]*Task, error) {
	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
