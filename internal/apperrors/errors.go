package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a ledger debit would drive a liquid
// account balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNoChangeRequested indicates an adjustment request with nothing to change.
var ErrNoChangeRequested = errors.New("no change requested")

// ErrNeedsFallbackConfirmation indicates a recoverable payment failure: the
// primary cash account cannot cover the amount but a configured fallback can,
// and the caller must re-request with explicit fallback consent.
var ErrNeedsFallbackConfirmation = errors.New("payment requires fallback confirmation")

// ErrConflict indicates the operation lost a race against a concurrent writer.
// Failed operations leave no partial state, so the request is safe to retry.
var ErrConflict = errors.New("concurrency conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-style status code alongside a message and an
// optional wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
