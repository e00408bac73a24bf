package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSide      = errors.New("invalid order side")
	ErrInvalidSize      = errors.New("invalid order size")
	ErrInvalidPrice     = errors.New("invalid order price")
	ErrOffTick          = errors.New("value is not a multiple of the increment")
	ErrDuplicateOrderID = errors.New("order id already resident")
	ErrLevelOverflow    = errors.New("level size would overflow")
)

// RejectError is returned when an order is refused before it touches the book.
type RejectError struct {
	OrderID OrderID
	Reason  error
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("order %d rejected: %v", e.OrderID, e.Reason)
}

func (e *RejectError) Unwrap() error {
	return e.Reason
}

func reject(id OrderID, reason error) error {
	return &RejectError{OrderID: id, Reason: reason}
}
