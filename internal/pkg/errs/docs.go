// Package errs provides standardized error types for the delivery brokerage.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package defines the failure taxonomy of the lifecycle core:
//   - ObjectNotFoundError: a referenced account or delivery is absent
//   - BusinessRuleError: a role/status/ownership/transition precondition failed
//   - InsufficientFundsError: a balance cannot cover a required amount
//     (a specialization of the business-rule family)
//   - VersionConflictError: an optimistic version check failed on persist
//   - ValueIsRequiredError / ValueIsInvalidError: construction-time validation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is classification
//
// InsufficientFunds and VersionConflict sentinels wrap ErrBusinessRule, so
// callers that only distinguish "not found" from "business rule" can match
// the whole family with a single errors.Is check.
package errs
