package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/sirupsen/logrus"

	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the durable task store. Every method acquires its own
// connection and releases it before returning.
type Repository interface {
	// CreateTask inserts a row and returns its newly assigned ID.
	CreateTask(ctx context.Context, title, description, dueDate string) (int64, error)

	// ListTasks returns every task in insertion order.
	ListTasks(ctx context.Context) ([]*Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)

	// UpdateTask overwrites the row with the given ID and returns the number
	// of rows changed: 0 when no row matches, otherwise 1.
	UpdateTask(ctx context.Context, id int64, title, description, dueDate string) (int64, error)

	// DeleteTask removes the row with the given ID. Deleting a missing row
	// is not an error.
	DeleteTask(ctx context.Context, id int64) error

	Close() error
}

// SQLiteRepository implements the Repository interface on a SQLite file.
// It holds no open handle between calls, so the path must name a file: an
// in-memory database would be discarded after every operation.
type SQLiteRepository struct {
	dbPath string
	logger logrus.FieldLogger
}

// New creates a new SQLite repository instance using the process logger
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithLogger(dbPath, logging.Logger())
}

// NewWithLogger creates a repository and checks that the database file can
// be opened and carries the current schema.
func NewWithLogger(dbPath string, logger logrus.FieldLogger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = logging.Logger()
	}
	r := &SQLiteRepository{
		dbPath: dbPath,
		logger: logger.WithField("component", "task_store"),
	}

	if err := r.withConnection(context.Background(), func(*sql.DB) error { return nil }); err != nil {
		return nil, err
	}

	return r, nil
}

// Path returns the database file the repository operates on
func (r *SQLiteRepository) Path() string {
	return r.dbPath
}

// Close is a no-op: connections never outlive a single operation.
func (r *SQLiteRepository) Close() error {
	return nil
}

// open acquires a connection and makes sure the schema is current
func (r *SQLiteRepository) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", r.dbPath)
	if err != nil {
		return nil, HandleStorageError("open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, HandleStorageError("open database", err)
	}

	if err := migrations.Ensure(ctx, db); err != nil {
		db.Close()
		return nil, HandleStorageError("prepare schema", err)
	}

	return db, nil
}

// withConnection runs fn on a fresh connection that is closed on every exit path
func (r *SQLiteRepository) withConnection(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			r.logger.WithError(cerr).Warn("failed to close database")
		}
	}()

	return fn(db)
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, title, description, dueDate string) (int64, error) {
	query := `INSERT INTO tasks (title, description, due_date) VALUES (?, ?, ?)`

	var id int64
	err := r.withConnection(ctx, func(db *sql.DB) error {
		var err error
		id, err = ExecuteWithLastInsertID(ctx, db, "create task", query, title, description, dueDate)
		return err
	})
	if err != nil {
		return 0, err
	}

	r.logger.WithFields(logrus.Fields{"operation": "create", "id": id}).Debug("task created")
	return id, nil
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT id, title, description, due_date FROM tasks ORDER BY id ASC`

	var tasks []*Task
	err := r.withConnection(ctx, func(db *sql.DB) error {
		var err error
		tasks, err = QueryMultiple(ctx, db, query, ScanTasks, "tasks")
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{"operation": "list", "count": len(tasks)}).Debug("tasks listed")
	return tasks, nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT id, title, description, due_date FROM tasks WHERE id = ?`

	var task *Task
	err := r.withConnection(ctx, func(db *sql.DB) error {
		var err error
		task, err = QuerySingle(ctx, db, query, ScanTask, "task", strconv.FormatInt(id, 10), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask updates an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, id int64, title, description, dueDate string) (int64, error) {
	query := `UPDATE tasks SET title = ?, description = ?, due_date = ? WHERE id = ?`

	var affected int64
	err := r.withConnection(ctx, func(db *sql.DB) error {
		var err error
		affected, err = ExecuteWithRowsAffected(ctx, db, "update task", query, title, description, dueDate, id)
		return err
	})
	if err != nil {
		return 0, err
	}

	r.logger.WithFields(logrus.Fields{"operation": "update", "id": id, "affected": affected}).Debug("task updated")
	return affected, nil
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`

	var affected int64
	err := r.withConnection(ctx, func(db *sql.DB) error {
		var err error
		affected, err = ExecuteWithRowsAffected(ctx, db, "delete task", query, id)
		return err
	})
	if err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{"operation": "delete", "id": id, "affected": affected}).Debug("task deleted")
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
