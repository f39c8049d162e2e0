package errs

import "strings"

// FieldError represents a validation error tied to one input field.
// Example:
//
//	{ "field": "first_name", "error": "first_name is not an accepted first name" }
type FieldError struct {
	// Field is the wire name of the field the error relates to (e.g. "access_token").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ValidationError is the single error kind returned when an input mapping
// does not satisfy a record's constraints.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "VALIDATION_FAILED").
//   - Message: human-friendly message.
//   - Errors: list of per-field errors. Empty when the input could not be
//     decoded into the record shape at all.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error makes *ValidationError satisfy the built-in `error` interface.
//
// Field errors are appended to the message so a logged or printed error
// still says which fields were rejected.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Error)
	}

	return e.Message + ": " + strings.Join(parts, "; ")
}

// Is customizes how errors.Is(...) treats ValidationError.
//
// It returns true if `target` is also a *ValidationError.
// This does NOT compare Code/Message/Errors, only the type.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)

	return ok
}

// WithMessage returns a *copy* of this ValidationError with Message replaced.
func (e *ValidationError) WithMessage(message string) *ValidationError {
	return &ValidationError{
		Code:    e.Code,
		Message: message,
		Errors:  e.Errors,
	}
}

// Fields returns the names of all fields carrying an error, in order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}

	return fields
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Validation Failed" -> "VALIDATION_FAILED"
//
// Used to create stable machine-readable error codes.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
