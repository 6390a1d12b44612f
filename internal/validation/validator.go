package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"task-manager/internal/config"
)

// DateLayout is the only due date format accepted from users
const DateLayout = "2006-01-02"

const (
	defaultTitleMaxLength       = 255
	defaultDescriptionMaxLength = 2000
)

// Validator wraps the go-playground validator with the configured limits
type Validator struct {
	validate *validator.Validate
	config   *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their tag name so messages read "due_date", not "DueDate"
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("field"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v, config: cfg}
}

// ValidateStruct validates a struct using struct tags and converts failures
// into a ValidationError.
func (v *Validator) ValidateStruct(s interface{}) error {
	return toValidationError(v.validate.Struct(s))
}

// ValidateMaxLength checks that value has at most max characters
func (v *Validator) ValidateMaxLength(field, value string, max int) error {
	err := v.validate.Var(value, fmt.Sprintf("max=%d", max))
	if err == nil {
		return nil
	}
	ve := NewValidationError()
	ve.AddInvalidLengthError(field, value, 0, max)
	return ve
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidDate checks that s is a calendar date in DateLayout
func (v *Validator) IsValidDate(s string) bool {
	return v.validate.Var(s, "datetime="+DateLayout) == nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getTitleMaxLength returns configured maximum title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil && v.config.Validation.TitleMaxLength > 0 {
		return v.config.Validation.TitleMaxLength
	}
	return defaultTitleMaxLength
}

// getDescriptionMaxLength returns configured maximum description length or default
func (v *Validator) getDescriptionMaxLength() int {
	if v.config != nil && v.config.Validation.DescriptionMaxLength > 0 {
		return v.config.Validation.DescriptionMaxLength
	}
	return defaultDescriptionMaxLength
}

// toValidationError converts validator.ValidationErrors to a ValidationError.
// Other errors pass through unchanged.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := NewValidationError()
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			ve.AddRequiredError(field)
		case "datetime":
			ve.AddInvalidFormatError(field, fe.Value(), "YYYY-MM-DD")
		case "max":
			ve.AddError(field, ErrorTypeInvalidLength,
				fmt.Sprintf("%s must be at most %s characters long", field, fe.Param()), fe.Value())
		default:
			ve.AddInvalidValueError(field, fe.Value(), fe.Tag())
		}
	}
	return ve
}
