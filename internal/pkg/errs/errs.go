package errs

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for classification with errors.Is. Each struct error type
// below unwraps to one of these.
var (
	// ErrObjectNotFound indicates a referenced account or delivery is absent.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsRequired indicates a required value is missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value failed validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrBusinessRule indicates a role, status, ownership, funds, or state
	// transition precondition was violated. The operation aborts before any
	// mutation.
	ErrBusinessRule = errors.New("business rule violated")

	// ErrInsufficientFunds is a specialization of ErrBusinessRule raised when
	// a debit would leave a balance negative, or a coverage check fails.
	ErrInsufficientFunds = fmt.Errorf("insufficient funds: %w", ErrBusinessRule)

	// ErrVersionConflict is a specialization of ErrBusinessRule raised when an
	// optimistic version check fails on persist: the record changed between
	// read and write, and the caller should retry or report the conflict.
	ErrVersionConflict = fmt.Errorf("version conflict: %w", ErrBusinessRule)
)

// ObjectNotFoundError is returned when an object cannot be found by its
// identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause (for example a storage error).
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsRequiredError is returned when a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// BusinessRuleError is returned when a lifecycle precondition is violated:
// wrong role, unapproved account, wrong delivery status, wrong owner, or an
// invalid state transition.
type BusinessRuleError struct {
	Message string
	Cause   error
}

// NewBusinessRuleError creates a BusinessRuleError without a cause.
func NewBusinessRuleError(message string) *BusinessRuleError {
	return &BusinessRuleError{Message: message}
}

// NewBusinessRuleErrorWithCause creates a BusinessRuleError wrapping an
// underlying cause.
func NewBusinessRuleErrorWithCause(message string, cause error) *BusinessRuleError {
	return &BusinessRuleError{Message: message, Cause: cause}
}

func (e *BusinessRuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrBusinessRule, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrBusinessRule, e.Message)
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRule
}

// InsufficientFundsError is returned when a balance cannot cover a required
// amount. It unwraps to ErrInsufficientFunds, which itself wraps
// ErrBusinessRule, so errors.Is matches both.
type InsufficientFundsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

// NewInsufficientFundsError creates an InsufficientFundsError describing the
// available balance and the required amount.
func NewInsufficientFundsError(balance, required decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{Balance: balance, Required: required}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: balance is %s, required is %s",
		ErrInsufficientFunds, e.Balance, e.Required)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// VersionConflictError is returned when an optimistic version check fails on
// persist. It unwraps to ErrVersionConflict, which itself wraps
// ErrBusinessRule.
type VersionConflictError struct {
	ParamName string
	ID        string
}

// NewVersionConflictError creates a VersionConflictError for the given record.
func NewVersionConflictError(paramName, id string) *VersionConflictError {
	return &VersionConflictError{ParamName: paramName, ID: id}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrVersionConflict, e.ParamName, e.ID)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
