package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("title")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "validation error",
			operation: "add task",
			err:       ve,
			expected:  "failed to add task: title is required",
		},
		{
			name:      "not found error",
			operation: "get task",
			err:       apperrors.NewNotFoundError("task", "7"),
			expected:  "failed to get task: task not found: 7",
		},
		{
			name:      "storage error",
			operation: "list tasks",
			err:       apperrors.NewStorageError("open database", errors.New("locked")),
			expected:  "failed to list tasks: The task database could not be accessed. Please try again.",
		},
		{
			name:      "deadline exceeded",
			operation: "delete task",
			err:       fmt.Errorf("query: %w", context.DeadlineExceeded),
			expected:  "failed to delete task: The operation timed out. Please try again.",
		},
		{
			name:      "regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.EqualError(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()
	storageErr := apperrors.NewStorageError("open database", errors.New("locked"))

	result := eh.HandleSimple(storageErr)

	assert.EqualError(t, result, "The task database could not be accessed. Please try again.")
	assert.True(t, eh.IsStorageError(result))
	assert.Equal(t, "STORAGE_ERROR", eh.GetErrorCode(result))
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("title")

	assert.True(t, eh.IsValidationError(ve))
	assert.True(t, eh.IsValidationError(apperrors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsValidationError(errors.New("plain")))

	assert.True(t, eh.IsNotFoundError(apperrors.NewNotFoundError("task", "1")))
	assert.False(t, eh.IsNotFoundError(errors.New("plain")))

	assert.False(t, eh.IsStorageError(errors.New("plain")))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("plain")))
}
