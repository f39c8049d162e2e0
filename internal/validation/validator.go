package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/go-schemacheck/internal/errs"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Custom validator tags backed by Rules.
const (
	TagAccessToken = "accesstoken"
	TagFirstName   = "firstname"
	TagLastName    = "lastname"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// customMessages are the English messages for the custom tags.
var customMessages = map[string]string{
	TagAccessToken: "{0} must be a valid access token",
	TagFirstName:   "{0} is not an accepted first name",
	TagLastName:    "{0} is not an accepted last name",
}

// Validatable is implemented by input types that know how to validate themselves.
//
// Typical pattern:
// - Define an input struct with `mapstructure` and validator tags (`validate:"required,firstname"`)
// - Implement Validate(v) error that runs v.Struct(input)
// - Return the validator error as is; DecodeAndValidate converts it
type Validatable interface {
	Validate(v *Validator) error
}

// Validator wraps go-playground/validator with English translations and the
// custom rule tags. It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New constructs a Validator bound to rules.
func New(rules *Rules) (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name ("first_name") instead of the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, enTrans, rules); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Struct runs struct-tag validation on s and returns the raw validator error.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// DecodeAndValidate decodes raw into payload and validates it.
//
// Flow:
// 1) raw is decoded strictly into payload (which must be a pointer).
// 2) payload.Validate(v) applies validation rules.
// 3) Returns *errs.ValidationError with code INVALID_TYPE if decoding fails,
// or VALIDATION_FAILED with field-level errors if validation fails.
func (v *Validator) DecodeAndValidate(raw map[string]any, payload Validatable) error {
	if err := decode(raw, payload); err != nil {
		return errs.NewInvalidTypeError("Invalid input: " + err.Error())
	}

	if err := payload.Validate(v); err != nil {
		return v.extractValidationError(err)
	}

	return nil
}

func (v *Validator) extractValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a field failure (e.g. validator.InvalidValidationError): a bug in
		// the caller, pass it through untouched.
		return err
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: fe.Translate(v.translator),
		})
	}

	return errs.NewValidationError("Validation failed", nil, fieldErrors)
}

func registerRules(validate *validator.Validate, trans ut.Translator, rules *Rules) error {
	checks := map[string]func(string) bool{
		TagAccessToken: rules.IsAccessToken,
		TagFirstName:   rules.IsFirstName,
		TagLastName:    rules.IsLastName,
	}

	for tag, check := range checks {
		err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && check(s)
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}

		err = validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, customMessages[tag], false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return fmt.Errorf("register %s translation: %w", tag, err)
		}
	}

	return nil
}
