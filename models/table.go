package models

import "time"

type Table struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TableNumber string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"table_number"`
	Capacity    int     `gorm:"not null;default:2" json:"capacity"`
	Section     string  `gorm:"type:varchar(100)" json:"section,omitempty"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
	QRCodeID    *uint   `gorm:"index" json:"qr_code_id,omitempty"`
	QRCode      *QRCode `gorm:"foreignKey:QRCodeID" json:"qr_code,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
