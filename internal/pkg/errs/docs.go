// Package errs provides standardized error types for the ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an order, partner or ledger entry cannot be found
//   - VersionIsInvalidError: For optimistic-concurrency versions that can never match
//   - ValueIsOutOfRangeError: For bounded values such as grid coordinates
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Lifecycle errors (invalid or unauthorized transitions, stale versions) live next
// to the order aggregate; this package only carries the generic validation family.
package errs
