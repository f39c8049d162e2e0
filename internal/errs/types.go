package errs

import "errors"

// Status texts the error codes are derived from.
const (
	validationFailedText = "Validation Failed"
	invalidTypeText      = "Invalid Type"
)

var (
	// CodeValidationFailed marks inputs that decoded fine but broke a field rule.
	CodeValidationFailed = MakeUpperCaseWithUnderscores(validationFailedText)

	// CodeInvalidType marks inputs whose values have the wrong type for the record.
	CodeInvalidType = MakeUpperCaseWithUnderscores(invalidTypeText)
)

// NewValidationError creates a ValidationError for rule violations.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "VALIDATION_FAILED")
//   - fieldErrors: optional slice of field errors
func NewValidationError(message string, code *string, fieldErrors []FieldError) *ValidationError {
	formattedCode := CodeValidationFailed

	// If caller supplies custom code pointer, use it as is.
	if code != nil {
		formattedCode = *code
	}

	return &ValidationError{
		Code:    formattedCode,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewInvalidTypeError creates a ValidationError for inputs that cannot be
// decoded into the record shape (e.g. a string where an integer is expected).
func NewInvalidTypeError(message string) *ValidationError {
	code := CodeInvalidType
	return NewValidationError(message, &code, nil)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
