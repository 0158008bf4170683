package models

// Filament is a catalog entry for a printable material with its current price.
type Filament struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	PricePerKG float64 `gorm:"column:price_per_kg;not null" json:"price_per_kg"`
}

// TableName keeps the legacy table name.
func (Filament) TableName() string {
	return "filaments"
}
