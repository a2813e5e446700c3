package models

import (
	"time"
)

// Order statuses. The kitchen-facing axis moves pending -> preparing ->
// served -> completed; cancelled is reachable from any non-terminal state.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderServed    = "served"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Payment statuses. Freely toggleable while the order is unlocked.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// LockWindow is the grace period after an order is both completed and paid
// during which staff can still correct it. Once elapsed the order is frozen.
const LockWindow = 5 * time.Minute

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TableID       uint        `gorm:"not null;index" json:"table_id"`
	Table         Table       `gorm:"foreignKey:TableID" json:"table"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CustomerName  string      `gorm:"type:varchar(255);not null;default:'Guest'" json:"customer_name"`
	CustomerEmail string      `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	ServedByID    *uint       `gorm:"index" json:"served_by_id,omitempty"`
	ServedBy      *User       `gorm:"foreignKey:ServedByID" json:"served_by,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

// statusFlow holds the single forward edge from each non-terminal status.
var statusFlow = map[string]string{
	OrderPending:   OrderPreparing,
	OrderPreparing: OrderServed,
	OrderServed:    OrderCompleted,
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

// Terminal reports whether the status axis can move at all.
func (o *Order) Terminal() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled
}

// CanTransitionTo validates an edge of the status graph. Only the next
// forward step is legal; cancelling is allowed from any non-terminal state.
func (o *Order) CanTransitionTo(next string) bool {
	if o.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	return statusFlow[o.Status] == next
}

// Locked reports whether the order is frozen: completed, paid, and the
// lock window has elapsed since the last update. Computed, never stored.
func (o *Order) Locked(now time.Time) bool {
	return o.Status == OrderCompleted &&
		o.PaymentStatus == PaymentPaid &&
		now.Sub(o.UpdatedAt) >= LockWindow
}

// TimeUntilLock returns the remaining grace period. The second result is
// false when the countdown does not apply (order not completed+paid yet).
func (o *Order) TimeUntilLock(now time.Time) (time.Duration, bool) {
	if o.Status != OrderCompleted || o.PaymentStatus != PaymentPaid {
		return 0, false
	}
	remaining := LockWindow - now.Sub(o.UpdatedAt)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// LockInfo is the read-only lock projection attached to orders returned to
// polling clients. Clients render the countdown from RemainingSeconds; the
// authoritative check happens server-side on every mutation.
type LockInfo struct {
	Locked           bool  `json:"locked"`
	Applicable       bool  `json:"applicable"`
	RemainingSeconds int64 `json:"remaining_seconds"`
}

func (o *Order) LockInfo(now time.Time) LockInfo {
	remaining, applicable := o.TimeUntilLock(now)
	return LockInfo{
		Locked:           o.Locked(now),
		Applicable:       applicable,
		RemainingSeconds: int64(remaining.Seconds()),
	}
}
