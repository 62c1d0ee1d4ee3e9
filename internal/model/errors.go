package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// order / payment errors
	ErrInvalidPayment  = errors.New("transaction id is required")
	ErrAlreadyPaid     = errors.New("order is already paid")
	ErrDuplicateTxn    = errors.New("transaction id already used")
	ErrPaidOrderDelete = errors.New("orders with a payment cannot be deleted")
	ErrInconsistent    = errors.New("payment recorded but order not marked paid")

	ErrInvalidAmount = errors.New("price must be positive")
)

// InconsistentError reports a Payment that was stored while the matching
// Order update did not happen.
type InconsistentError struct {
	PaymentID string
	OrderID   string
	Err       error // nil when the update matched no unpaid order
}

func (e *InconsistentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment %s recorded, order %s not updated: %v", e.PaymentID, e.OrderID, e.Err)
	}
	return fmt.Sprintf("payment %s recorded, order %s not updated", e.PaymentID, e.OrderID)
}

func (e *InconsistentError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInconsistent, e.Err}
	}
	return []error{ErrInconsistent}
}
