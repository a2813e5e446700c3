package models

import "time"

// QR code kinds. A table code carries the table it was generated for; a
// global code points at the full menu or an arbitrary destination.
const (
	QRKindTable  = "table"
	QRKindGlobal = "global"
)

// GlobalMenuSection is the canonical section label for the restaurant-wide
// menu code. Lookups find the global code by this label.
const GlobalMenuSection = "Global Menu"

type QRCode struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Kind    string `gorm:"type:varchar(20);not null;default:'global'" json:"kind"`
	TableID *uint  `gorm:"index" json:"table_id,omitempty"`
	Section string `gorm:"type:varchar(100);not null" json:"section"`
	// URL is the destination encoded in the artifact.
	URL string `gorm:"type:varchar(512);not null" json:"url"`
	// Code is the public path of the rendered PNG, e.g. /uploads/qr-<uuid>.png.
	Code      string    `gorm:"type:varchar(255);not null" json:"code"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
