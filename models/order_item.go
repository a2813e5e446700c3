package models

import (
	"time"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order  Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID uint  `gorm:"not null" json:"menu_id"`
	Menu   Menu  `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu"`
	Quantity int `gorm:"not null" json:"quantity"`
	// Price is the unit price captured when the order was placed. Later menu
	// price changes never alter historical orders.
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Subtotal is the line contribution to the order total.
func (oi *OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
