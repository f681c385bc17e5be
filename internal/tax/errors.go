package tax

import (
	"errors"
	"fmt"
)

// Common line item errors
var (
	// ErrUnknownRegime is returned when a tax type tag is not one of
	// separate, inclusive or exempt.
	ErrUnknownRegime = errors.New("unknown tax regime")

	// ErrNegativeQuantity is returned when a line item quantity is below zero.
	ErrNegativeQuantity = errors.New("quantity must not be negative")

	// ErrNegativeUnitPrice is returned when a line item unit price is below zero.
	ErrNegativeUnitPrice = errors.New("unit price must not be negative")

	// ErrAmountOutOfRange is returned when quantity × unit price is too large
	// to express in whole won.
	ErrAmountOutOfRange = errors.New("line amount out of range")
)

// ValidationError describes a line item field that cannot be computed.
type ValidationError struct {
	// Line is the zero-based index of the line within its document,
	// or -1 when the item was validated on its own.
	Line  int
	Field string
	Value interface{}
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("tax: line %d: invalid %s (value: %v): %v", e.Line+1, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("tax: invalid %s (value: %v): %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newValidationError(field string, value interface{}, err error) *ValidationError {
	return &ValidationError{
		Line:  -1,
		Field: field,
		Value: value,
		Err:   err,
	}
}
