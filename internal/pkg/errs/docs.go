// Package errs provides the standardized error types of the dispatch core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The taxonomy mirrors the outcomes callers are expected to handle:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input, the caller's fault
//   - ObjectNotFoundError: a referenced id does not exist
//   - InvalidTransitionError: an order status change the state machine forbids
//   - ConflictError: a concurrent-write race or business-rule conflict
//   - PersistenceError: a storage failure, retryable by the caller
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies the kind
//
// Business-rule errors (validation, not-found, invalid-transition, conflict)
// are surfaced to callers verbatim and are not logged as failures.
package errs
