// Package validation contains the logic for validating
// record data.
//
// It uses the `validator` library to enforce rules (like
// required fields or allow-listed names) defined in struct tags,
// decodes untyped input with `mapstructure` before validating it,
// and extracts validation errors into a format the caller can
// understand
package validation
