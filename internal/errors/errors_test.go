package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeStorage, "storage"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypePermission, "permission"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("unable to open database file")
	err := NewStorageError("create task", cause)

	assert.Equal(t, ErrorTypeStorage, err.Type)
	assert.Equal(t, "STORAGE_ERROR", err.Code)
	assert.Equal(t, "storage: storage operation failed: create task (caused by: unable to open database file)", err.Error())
	assert.ErrorIs(t, err, cause)

	operation, ok := err.GetContext("operation")
	assert.True(t, ok)
	assert.Equal(t, "create task", operation)
}

func TestStorageErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load tasks: %w", NewStorageError("list tasks", errors.New("disk I/O error")))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsStorageError(wrapped))
	assert.False(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.Equal(t, "STORAGE_ERROR", GetErrorCode(wrapped))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "42")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "task not found: 42", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Nil(t, err.Unwrap())

	identifier, ok := err.GetContext("identifier")
	assert.True(t, ok)
	assert.Equal(t, "42", identifier)
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("position", 7, "out of range")

	assert.Equal(t, "invalid input for position: out of range", err.Message)
	assert.Equal(t, "INVALID_INPUT", err.Code)
	value, _ := err.GetContext("value")
	assert.Equal(t, 7, value)
}

func TestAppError_Is(t *testing.T) {
	a := &AppError{Type: ErrorTypeValidation, Code: "VALIDATION_FAILED"}
	b := &AppError{Type: ErrorTypeValidation, Code: "VALIDATION_FAILED"}
	c := &AppError{Type: ErrorTypeStorage, Code: "STORAGE_ERROR"}

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
	assert.False(t, a.Is(errors.New("regular error")))
}

func TestAppError_Context(t *testing.T) {
	appErr := &AppError{Type: ErrorTypeValidation}

	_, exists := appErr.GetContext("field")
	assert.False(t, exists)

	assert.Same(t, appErr, appErr.WithContext("field", "title"))
	value, exists := appErr.GetContext("field")
	assert.True(t, exists)
	assert.Equal(t, "title", value)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeStorage, "wrapped message")

	assert.Equal(t, ErrorTypeStorage, err.Type)
	assert.Equal(t, "storage", err.Code)
	assert.Same(t, cause, err.Cause)
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("title is required", nil), "title is required"},
		{"not found", NewNotFoundError("task", "3"), "task not found: 3"},
		{"storage", NewStorageError("list tasks", errors.New("locked")), "The task database could not be accessed. Please try again."},
		{"timeout", NewTimeoutError("list tasks", "30s"), "The operation timed out. Please try again."},
		{"permission", NewPermissionError("create", "/root/.tm"), "permission denied for create on /root/.tm"},
		{"regular", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("task", "1")))
	assert.False(t, ShouldLogError(NewInvalidInputError("position", 0, "out of range")))
	assert.True(t, ShouldLogError(NewStorageError("update task", errors.New("readonly"))))
	assert.True(t, ShouldLogError(NewTimeoutError("update task", "1s")))
	assert.True(t, ShouldLogError(errors.New("regular error")))
}
