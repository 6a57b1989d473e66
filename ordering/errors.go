package ordering

import (
	"errors"
	"fmt"
)

const (
	ReasonEmptyCart      = "empty cart"
	ReasonMissingContact = "missing contact fields"
)

var (
	ErrEmptyCart          = errors.New(ReasonEmptyCart)
	ErrMissingContact     = errors.New(ReasonMissingContact)
	ErrNoPendingDuplicate = errors.New("no duplicate order is awaiting a decision")
	ErrUnknownItem        = errors.New("unknown menu item")
	ErrUnknownMeal        = errors.New("unknown meal slot")
	ErrInvalidQty         = errors.New("quantity out of range")
	ErrSessionNotFound    = errors.New("session not found")
)

// ValidationError is returned when a submission is rejected before any write
type ValidationError struct {
	Reason string
	err    error
}

func (e *ValidationError) Error() string { return e.Reason }
func (e *ValidationError) Unwrap() error { return e.err }

func newValidationError(err error) *ValidationError {
	return &ValidationError{Reason: err.Error(), err: err}
}

// PersistenceError means the order was NOT saved even though it was valid
type PersistenceError struct {
	Phone string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order not saved: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
