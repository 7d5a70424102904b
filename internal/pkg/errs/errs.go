package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each failure class. Wrapped by the typed errors below,
// so callers can classify with errors.Is regardless of the concrete type.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderIsTerminal    = errors.New("order is terminal")
	ErrSchedulingConflict = errors.New("scheduling conflict")
	ErrConstraintViolated = errors.New("constraint violated")
)

var newlineReplacer = strings.NewReplacer("\n", " ", "\r", " ")

// sanitize keeps error messages single-line so they stay readable in logs
// and in the text envelopes returned to callers.
func sanitize(value string) string {
	return newlineReplacer.Replace(value)
}

// ValidationError reports malformed input rejected before any storage access,
// such as an inverted time range, an empty patch, or a missing required field.
type ValidationError struct {
	Message string
	Cause   error
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewValidationErrorWithCause creates a ValidationError wrapping an underlying cause.
func NewValidationErrorWithCause(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation failed: %s (cause: %s)", sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("validation failed: %s", sanitize(e.Message))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NotFoundError reports that the referenced order ID does not exist.
type NotFoundError struct {
	OrderID string
	Cause   error
}

// NewNotFoundError creates a NotFoundError for the given order ID.
func NewNotFoundError(orderID string) *NotFoundError {
	return &NotFoundError{OrderID: orderID}
}

// NewNotFoundErrorWithCause creates a NotFoundError wrapping an underlying cause.
func NewNotFoundErrorWithCause(orderID string, cause error) *NotFoundError {
	return &NotFoundError{OrderID: orderID, Cause: cause}
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("order not found: %s (cause: %s)", sanitize(e.OrderID), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("order not found: %s", sanitize(e.OrderID))
}

func (e *NotFoundError) Unwrap() error {
	return ErrOrderNotFound
}

// TerminalOrderError reports a mutation attempted on an order whose status is
// terminal. Terminal orders accept no further changes; only hard delete remains.
type TerminalOrderError struct {
	OrderID string
	Status  string
	Cause   error
}

// NewTerminalOrderError creates a TerminalOrderError for the given order and status.
func NewTerminalOrderError(orderID string, status string) *TerminalOrderError {
	return &TerminalOrderError{OrderID: orderID, Status: status}
}

// NewTerminalOrderErrorWithCause creates a TerminalOrderError wrapping an underlying cause.
func NewTerminalOrderErrorWithCause(orderID string, status string, cause error) *TerminalOrderError {
	return &TerminalOrderError{OrderID: orderID, Status: status, Cause: cause}
}

func (e *TerminalOrderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("order is terminal: %s has status %s (cause: %s)",
			sanitize(e.OrderID), sanitize(e.Status), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("order is terminal: %s has status %s", sanitize(e.OrderID), sanitize(e.Status))
}

func (e *TerminalOrderError) Unwrap() error {
	return ErrOrderIsTerminal
}

// ConflictError reports a storage-level uniqueness or interval-exclusion
// violation. SKU carries the item the conflict occurred on for diagnostics.
type ConflictError struct {
	SKU     string
	Message string
	Cause   error
}

// NewConflictError creates a ConflictError for the given SKU.
func NewConflictError(sku string, message string) *ConflictError {
	return &ConflictError{SKU: sku, Message: message}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(sku string, message string, cause error) *ConflictError {
	return &ConflictError{SKU: sku, Message: message, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scheduling conflict: %s (cause: %s)", sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("scheduling conflict: %s", sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}

// ConstraintError reports a storage-level constraint failure that is neither
// a uniqueness nor an exclusion violation, such as the check requiring a
// locker code once an order is shipped.
type ConstraintError struct {
	Message string
	Cause   error
}

// NewConstraintError creates a ConstraintError with the given message.
func NewConstraintError(message string) *ConstraintError {
	return &ConstraintError{Message: message}
}

// NewConstraintErrorWithCause creates a ConstraintError wrapping an underlying cause.
func NewConstraintErrorWithCause(message string, cause error) *ConstraintError {
	return &ConstraintError{Message: message, Cause: cause}
}

func (e *ConstraintError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("constraint violated: %s (cause: %s)", sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("constraint violated: %s", sanitize(e.Message))
}

func (e *ConstraintError) Unwrap() error {
	return ErrConstraintViolated
}
