// Package errs define custom error types and utilities.
//
// Its purpose is to create a specific error structure..
// (ValidationError with per-field FieldErrors)..
// so callers receive meaningful, actionable, and consistent..
// error messages when a record is rejected.
package errs
