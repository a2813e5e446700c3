package models

import (
	"errors"
	"fmt"
)

// Errors returned by the order lifecycle engine and the QR code binder.
// Controllers map these onto HTTP status codes; the services never retry
// or swallow them.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrTableNotFound  = errors.New("table not found")
	ErrQRCodeNotFound = errors.New("qr code not found")
	ErrMenuNotFound   = errors.New("menu item not found")

	ErrInvalidTable = errors.New("invalid table")
	ErrEmptyOrder   = errors.New("at least one item with quantity >= 1 is required")

	ErrInvalidStatus        = errors.New("valid status is required")
	ErrInvalidPaymentStatus = errors.New("valid payment status is required")
	ErrInvalidTransition    = errors.New("invalid status transition")

	ErrOrderLocked   = errors.New("order locked (no further changes allowed)")
	ErrStaffRequired = errors.New("staff id is required to mark an order served or completed")

	ErrQRGeneration = errors.New("failed to generate qr code")

	ErrUpdateConflict = errors.New("order was modified by another request, please retry")
)

// TransitionError reports which edge of the status graph was rejected.
// errors.Is(err, ErrInvalidTransition) matches it.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %q to %q", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
