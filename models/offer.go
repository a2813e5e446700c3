package models

import "time"

type Offer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Discount    float64   `gorm:"type:decimal(5,2);not null" json:"discount"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// Active reports whether the offer window covers the given instant.
func (of *Offer) Active(now time.Time) bool {
	return !now.Before(of.StartDate) && !now.After(of.EndDate)
}
