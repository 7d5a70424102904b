// Package errs provides standardized error types for the rental application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure class the service can report:
//   - ValidationError: For malformed input caught before storage access
//   - NotFoundError: For references to orders that do not exist
//   - TerminalOrderError: For mutations attempted on terminal orders
//   - ConflictError: For uniqueness or interval-exclusion violations
//   - ConstraintError: For any other storage-level constraint failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrOrderNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The taxonomy is non-overlapping: every failure an operation can surface
// belongs to exactly one of these kinds, so callers can classify errors with
// errors.Is/errors.As without string matching.
package errs
