package models

import "time"

type Menu struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	// Category is a free label; curated MenuCategory rows are optional and
	// can be reconciled from these labels (see services.DeriveCategories).
	Category  string    `gorm:"type:varchar(100);not null;index" json:"category"`
	ImageUrl  *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
