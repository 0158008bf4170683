package models

import "time"

// PaymentStatus marks whether a print has been paid for.
type PaymentStatus string

const (
	PaymentOpen PaymentStatus = "open"
	PaymentPaid PaymentStatus = "paid"
)

// Valid reports whether s is one of the two defined statuses.
func (s PaymentStatus) Valid() bool {
	return s == PaymentOpen || s == PaymentPaid
}

// Print is a completed job record referencing one filament. Price is a
// snapshot computed at write time; it is not recalculated when the
// filament's catalog price changes later.
type Print struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"size:255;not null" json:"name"`
	Uploader       string        `gorm:"size:255;not null;index" json:"uploader"`
	ImagePath      string        `gorm:"size:1024" json:"image_path"`
	Link           string        `gorm:"size:1024" json:"link"`
	FilamentGrams  float64       `gorm:"not null" json:"filament_grams"`
	FilamentTypeID uint          `gorm:"not null;index" json:"filament_type_id"`
	PaymentStatus  PaymentStatus `gorm:"size:16;default:'open'" json:"payment_status"`
	Price          float64       `json:"price"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (Print) TableName() string {
	return "prints"
}

// ComputePrice returns the cost of a print from its consumed mass and the
// filament's price per kilogram. Both creation and full update go through
// this rule; status-only updates do not.
func ComputePrice(filamentGrams, pricePerKG float64) float64 {
	return filamentGrams / 1000 * pricePerKG
}
