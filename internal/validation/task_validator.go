package validation

import (
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// TaskInput holds the user-entered fields of a task after trimming
type TaskInput struct {
	Title       string `field:"title" validate:"required"`
	Description string `field:"description" validate:"required"`
	DueDate     string `field:"due_date" validate:"required,datetime=2006-01-02"`
}

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using the configured length limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTask trims every field and checks it. The returned input is
// only meaningful when err is nil.
func (tv *TaskValidator) ValidateTask(title, description, dueDate string) (TaskInput, error) {
	input := TaskInput{
		Title:       tv.validator.TrimAndValidateString(title),
		Description: tv.validator.TrimAndValidateString(description),
		DueDate:     tv.validator.TrimAndValidateString(dueDate),
	}

	validationError := NewValidationError()

	if err := tv.validator.ValidateStruct(input); err != nil {
		structErr, ok := err.(*ValidationError)
		if !ok {
			return input, err
		}
		validationError.Errors = append(validationError.Errors, structErr.Errors...)
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"title", input.Title, tv.validator.getTitleMaxLength()},
		{"description", input.Description, tv.validator.getDescriptionMaxLength()},
	}
	for _, l := range limits {
		if err := tv.validator.ValidateMaxLength(l.field, l.value, l.max); err != nil {
			validationError.Errors = append(validationError.Errors, err.(*ValidationError).Errors...)
		}
	}

	if validationError.HasErrors() {
		return input, validationError
	}

	return input, nil
}

// ToTask builds an unpersisted domain task from validated input
func (in TaskInput) ToTask() domain.Task {
	return domain.NewTask(in.Title, in.Description, in.DueDate)
}

// ValidatePosition checks a 1-based position typed by the user against the
// number of tasks shown and returns the 0-based index.
func (tv *TaskValidator) ValidatePosition(position, count int) (int, error) {
	if count == 0 || position < 1 || position > count {
		validationError := NewValidationError()
		if count == 0 {
			validationError.AddInvalidValueError("position", position, "there are no tasks")
		} else {
			validationError.AddInvalidRangeError("position", position, 1, count)
		}
		return 0, validationError
	}
	return position - 1, nil
}
