package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w", operation, &userError{msg: eh.message(err), cause: err})
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return &userError{msg: eh.message(err), cause: err}
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.GetUserMessage(errors.NewTimeoutError("command", "application timeout"))
	}

	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}

	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsStorageError checks if an error came from the task store
func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsStorageError(err)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError carries a display message while keeping the original error
// reachable through errors.Is and errors.As.
type userError struct {
	msg   string
	cause error
}

func (e *userError) Error() string { return e.msg }

func (e *userError) Unwrap() error { return e.cause }
