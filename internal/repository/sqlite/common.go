package sqlite

import (
	"context"
	"database/sql"
	"errors"

	apperrors "task-manager/internal/errors"
)

// HandleStorageError converts driver errors to structured app errors
func HandleStorageError(operation string, err error) error {
	return apperrors.NewStorageError(operation, err)
}

// RowsAffected reads the affected row count from a statement result
func RowsAffected(operation string, result sql.Result) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandleStorageError(operation+": get rows affected", err)
	}
	return rows, nil
}

// ExecuteWithLastInsertID executes a query and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleStorageError(operation, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleStorageError(operation+": get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithRowsAffected executes a query and returns how many rows it changed
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleStorageError(operation, err)
	}

	return RowsAffected(operation, result)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(entityType, id)
		}
		return nil, HandleStorageError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleStorageError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleStorageError("scan "+entityType, err)
	}

	return results, nil
}
