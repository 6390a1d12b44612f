package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}
	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows       [][]interface{}
	currentRow int
	err        error
}

func (tr *TestRows) Next() bool {
	if tr.currentRow >= len(tr.rows) {
		return false
	}
	tr.currentRow++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return (&TestScanner{data: tr.rows[tr.currentRow-1]}).Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Task
		expectError bool
	}{
		{
			name: "all columns set",
			scanner: &TestScanner{data: []interface{}{
				int64(1), text("Buy milk"), text("2%"), text("2024-05-01"),
			}},
			expected: &Task{ID: 1, Title: "Buy milk", Description: "2%", DueDate: "2024-05-01"},
		},
		{
			name: "null columns read as empty strings",
			scanner: &TestScanner{data: []interface{}{
				int64(2), text("Call mum"), sql.NullString{}, sql.NullString{},
			}},
			expected: &Task{ID: 2, Title: "Call mum"},
		},
		{
			name:        "scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanTasks(t *testing.T) {
	t.Run("preserves row order", func(t *testing.T) {
		rows := &TestRows{rows: [][]interface{}{
			{int64(3), text("c"), text("third"), text("2024-03-01")},
			{int64(1), text("a"), text("first"), text("2024-01-01")},
		}}

		tasks, err := ScanTasks(rows)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, int64(3), tasks[0].ID)
		assert.Equal(t, int64(1), tasks[1].ID)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		tasks, err := ScanTasks(&TestRows{})
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("iteration error", func(t *testing.T) {
		tasks, err := ScanTasks(&TestRows{err: errors.New("disk I/O error")})
		assert.Error(t, err)
		assert.Nil(t, tasks)
	})
}
