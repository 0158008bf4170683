package models

import "time"

// PrintWithFilament is a print row joined with its filament's current
// catalog values. FilamentName and PricePerKG reflect the catalog at read
// time while Price stays the frozen write-time snapshot.
type PrintWithFilament struct {
	ID             uint          `gorm:"column:id" json:"id"`
	Name           string        `gorm:"column:name" json:"name"`
	Uploader       string        `gorm:"column:uploader" json:"uploader"`
	ImagePath      string        `gorm:"column:image_path" json:"image_path"`
	Link           string        `gorm:"column:link" json:"link"`
	FilamentGrams  float64       `gorm:"column:filament_grams" json:"filament_grams"`
	FilamentTypeID uint          `gorm:"column:filament_type_id" json:"filament_type_id"`
	PaymentStatus  PaymentStatus `gorm:"column:payment_status" json:"payment_status"`
	Price          float64       `gorm:"column:price" json:"price"`
	CreatedAt      time.Time     `gorm:"column:created_at" json:"created_at"`
	FilamentName   string        `gorm:"column:filament_name" json:"filament_name"`
	PricePerKG     float64       `gorm:"column:price_per_kg" json:"price_per_kg"`
}

// UploaderSummary aggregates one uploader's prints across the full data set.
type UploaderSummary struct {
	Uploader    string  `gorm:"column:uploader" json:"uploader"`
	TotalPrints int64   `gorm:"column:total_prints" json:"total_prints"`
	OpenAmount  float64 `gorm:"column:open_amount" json:"open_amount"`
	PaidAmount  float64 `gorm:"column:paid_amount" json:"paid_amount"`
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`
}

// StatisticsTotals holds the overall counters for a date range.
type StatisticsTotals struct {
	TotalPrints      int64   `gorm:"column:total_prints" json:"total_prints"`
	TotalFilament    float64 `gorm:"column:total_filament" json:"total_filament"`
	TotalCost        float64 `gorm:"column:total_cost" json:"total_cost"`
	AvgPricePerPrint float64 `gorm:"column:avg_price_per_print" json:"avg_price_per_print"`
}

// MonthCount is a per-month print count, month formatted as YYYY-MM.
type MonthCount struct {
	Month string `gorm:"column:month" json:"month"`
	Count int64  `gorm:"column:count" json:"count"`
}

// FilamentMonthUsage is filament consumption bucketed by month and material.
type FilamentMonthUsage struct {
	Month        string  `gorm:"column:month" json:"month"`
	FilamentName string  `gorm:"column:filament_name" json:"filament_name"`
	Grams        float64 `gorm:"column:grams" json:"grams"`
}

// MonthCost is the summed snapshot cost per month.
type MonthCost struct {
	Month     string  `gorm:"column:month" json:"month"`
	TotalCost float64 `gorm:"column:total_cost" json:"total_cost"`
}

// UploaderRank ranks an uploader by print count within a date range.
type UploaderRank struct {
	Uploader   string  `gorm:"column:uploader" json:"uploader"`
	PrintCount int64   `gorm:"column:print_count" json:"print_count"`
	TotalGrams float64 `gorm:"column:total_grams" json:"total_grams"`
	AvgGrams   float64 `gorm:"column:avg_grams" json:"avg_grams"`
}

// FilamentAverage is the mean consumption per material.
type FilamentAverage struct {
	FilamentName string  `gorm:"column:filament_name" json:"filament_name"`
	AvgGrams     float64 `gorm:"column:avg_grams" json:"avg_grams"`
	PrintCount   int64   `gorm:"column:print_count" json:"print_count"`
}

// StatisticsBundle is the composite result of the statistics query set. All
// sub-results share the same inclusive date-range predicate.
type StatisticsBundle struct {
	Totals           StatisticsTotals     `json:"total_stats"`
	PrintsPerMonth   []MonthCount         `json:"prints_per_month"`
	FilamentOverTime []FilamentMonthUsage `json:"filament_over_time"`
	CostsPerMonth    []MonthCost          `json:"costs_per_month"`
	TopUploaders     []UploaderRank       `json:"top_uploaders"`
	AvgPerFilament   []FilamentAverage    `json:"avg_per_filament"`
}
