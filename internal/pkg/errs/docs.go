// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the order lifecycle and dispatch code.
//
// The package includes error types for the common failure classes:
//   - ObjectNotFoundError: a referenced order or courier does not exist
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value lies outside its allowed range
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() so errors.Is works against the sentinel
//
// Callers use errors.Is against the sentinels to separate "object missing"
// (never retried) from infrastructure failures, which matches the retry policy
// of the tracking and dispatch components.
package errs
