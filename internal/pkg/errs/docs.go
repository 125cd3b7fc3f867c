// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error family per failure class:
//   - ObjectNotFoundError: For when an object cannot be found by id
//   - ObjectAlreadyExistsError: For when a create collides with an existing id
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For malformed input or an illegal transition precondition
//   - ValueIsOutOfRangeError: For values outside their allowed bounds
//   - ConflictError: For business-rule violations against current state
//   - OperationFailedError: For unexpected lower-layer failures, with context
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application. Lifecycle operations validate
// fail-fast and re-wrap lower-layer failures with domain-meaningful messages.
package errs
