package repository

import (
	"errors"

	"gorm.io/gorm"

	"printlog/models"
)

const printColumns = "p.id, p.name, p.uploader, p.image_path, p.link, p.filament_grams, " +
	"p.filament_type_id, p.payment_status, p.price, f.name AS filament_name, f.price_per_kg, p.created_at"

// PrintRepository provides CRUD, filtered listing and the aggregation query
// set over print records.
type PrintRepository struct {
	db *gorm.DB
}

// NewPrintRepository creates a PrintRepository on the given handle.
func NewPrintRepository(db *gorm.DB) *PrintRepository {
	return &PrintRepository{db: db}
}

// CreatePrintParams carries the caller-supplied fields for a new print.
type CreatePrintParams struct {
	Name           string
	Uploader       string
	ImagePath      string
	Link           string
	FilamentGrams  float64
	FilamentTypeID uint
}

// UpdatePrintParams carries the full mutable field set of a print.
type UpdatePrintParams struct {
	Name           string
	Uploader       string
	Link           string
	FilamentGrams  float64
	FilamentTypeID uint
	PaymentStatus  models.PaymentStatus
}

// GetAll returns prints joined with their filament's current name and
// price, newest first. Empty filter values are ignored.
func (r *PrintRepository) GetAll(uploaderFilter, statusFilter string) ([]models.PrintWithFilament, error) {
	query := r.db.Table("prints p").
		Select(printColumns).
		Joins("JOIN filaments f ON p.filament_type_id = f.id")
	if uploaderFilter != "" {
		query = query.Where("p.uploader = ?", uploaderFilter)
	}
	if statusFilter != "" {
		query = query.Where("p.payment_status = ?", statusFilter)
	}

	prints := []models.PrintWithFilament{}
	err := query.Order("p.created_at DESC").Scan(&prints).Error
	return prints, err
}

// GetByID returns a single joined print row or gorm.ErrRecordNotFound.
func (r *PrintRepository) GetByID(id uint) (*models.PrintWithFilament, error) {
	var row models.PrintWithFilament
	err := r.db.Table("prints p").
		Select(printColumns).
		Joins("JOIN filaments f ON p.filament_type_id = f.id").
		Where("p.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new print with the price snapshotted from the filament's
// current catalog value. A missing filament yields price 0, not an error.
func (r *PrintRepository) Create(params CreatePrintParams) (uint, error) {
	price := models.ComputePrice(params.FilamentGrams, r.currentPricePerKG(params.FilamentTypeID))

	print := models.Print{
		Name:           params.Name,
		Uploader:       params.Uploader,
		ImagePath:      params.ImagePath,
		Link:           params.Link,
		FilamentGrams:  params.FilamentGrams,
		FilamentTypeID: params.FilamentTypeID,
		PaymentStatus:  models.PaymentOpen,
		Price:          price,
	}
	if err := r.db.Create(&print).Error; err != nil {
		return 0, err
	}
	return print.ID, nil
}

// Update overwrites all mutable fields and recomputes the price snapshot
// against the filament's current catalog value. created_at is never touched.
func (r *PrintRepository) Update(id uint, params UpdatePrintParams) error {
	price := models.ComputePrice(params.FilamentGrams, r.currentPricePerKG(params.FilamentTypeID))

	return r.db.Model(&models.Print{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":             params.Name,
		"uploader":         params.Uploader,
		"link":             params.Link,
		"filament_grams":   params.FilamentGrams,
		"filament_type_id": params.FilamentTypeID,
		"payment_status":   params.PaymentStatus,
		"price":            price,
	}).Error
}

// UpdatePaymentStatus overwrites the status field only; the price snapshot
// and every other field stay untouched.
func (r *PrintRepository) UpdatePaymentStatus(id uint, status models.PaymentStatus) error {
	return r.db.Model(&models.Print{}).Where("id = ?", id).
		Update("payment_status", status).Error
}

// Delete removes the record. Image cleanup belongs to the caller; the
// repository has no knowledge of the file system.
func (r *PrintRepository) Delete(id uint) error {
	return r.db.Delete(&models.Print{}, "id = ?", id).Error
}

// Uploaders returns the distinct set of uploader strings, sorted ascending.
func (r *PrintRepository) Uploaders() ([]string, error) {
	uploaders := []string{}
	err := r.db.Model(&models.Print{}).
		Distinct().
		Order("uploader ASC").
		Pluck("uploader", &uploaders).Error
	return uploaders, err
}

// SummaryByUploader returns one row per uploader with their print count and
// price sums split by payment status, over the full print set.
func (r *PrintRepository) SummaryByUploader() ([]models.UploaderSummary, error) {
	summary := []models.UploaderSummary{}
	err := r.db.Model(&models.Print{}).
		Select("uploader, "+
			"COUNT(*) AS total_prints, "+
			"COALESCE(SUM(CASE WHEN payment_status = ? THEN price ELSE 0 END), 0) AS open_amount, "+
			"COALESCE(SUM(CASE WHEN payment_status = ? THEN price ELSE 0 END), 0) AS paid_amount, "+
			"COALESCE(SUM(price), 0) AS total_amount",
			models.PaymentOpen, models.PaymentPaid).
		Group("uploader").
		Order("uploader ASC").
		Scan(&summary).Error
	return summary, err
}

// createdRange scopes a query to the inclusive date range on the date
// component of created_at. Empty bounds are open ends.
func createdRange(startDate, endDate string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if startDate != "" {
			db = db.Where("date(p.created_at) >= date(?)", startDate)
		}
		if endDate != "" {
			db = db.Where("date(p.created_at) <= date(?)", endDate)
		}
		return db
	}
}

// Statistics runs the six aggregate queries sharing one date-range
// predicate and bundles the results. An empty range yields zeroed totals
// and empty lists.
func (r *PrintRepository) Statistics(startDate, endDate string) (*models.StatisticsBundle, error) {
	scope := createdRange(startDate, endDate)
	bundle := models.StatisticsBundle{
		PrintsPerMonth:   []models.MonthCount{},
		FilamentOverTime: []models.FilamentMonthUsage{},
		CostsPerMonth:    []models.MonthCost{},
		TopUploaders:     []models.UploaderRank{},
		AvgPerFilament:   []models.FilamentAverage{},
	}

	err := r.db.Table("prints p").Scopes(scope).
		Select("COUNT(*) AS total_prints, " +
			"COALESCE(SUM(p.filament_grams), 0) AS total_filament, " +
			"COALESCE(SUM(p.price), 0) AS total_cost, " +
			"COALESCE(AVG(p.price), 0) AS avg_price_per_print").
		Scan(&bundle.Totals).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("prints p").Scopes(scope).
		Select("strftime('%Y-%m', p.created_at) AS month, COUNT(*) AS count").
		Group("month").
		Order("month ASC").
		Scan(&bundle.PrintsPerMonth).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("prints p").Scopes(scope).
		Select("strftime('%Y-%m', p.created_at) AS month, f.name AS filament_name, SUM(p.filament_grams) AS grams").
		Joins("JOIN filaments f ON p.filament_type_id = f.id").
		Group("month, f.name").
		Order("month ASC, f.name ASC").
		Scan(&bundle.FilamentOverTime).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("prints p").Scopes(scope).
		Select("strftime('%Y-%m', p.created_at) AS month, SUM(p.price) AS total_cost").
		Group("month").
		Order("month ASC").
		Scan(&bundle.CostsPerMonth).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("prints p").Scopes(scope).
		Select("p.uploader, COUNT(*) AS print_count, SUM(p.filament_grams) AS total_grams, AVG(p.filament_grams) AS avg_grams").
		Group("p.uploader").
		Order("print_count DESC").
		Limit(5).
		Scan(&bundle.TopUploaders).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("prints p").Scopes(scope).
		Select("f.name AS filament_name, AVG(p.filament_grams) AS avg_grams, COUNT(*) AS print_count").
		Joins("JOIN filaments f ON p.filament_type_id = f.id").
		Group("f.name").
		Order("avg_grams DESC").
		Scan(&bundle.AvgPerFilament).Error
	if err != nil {
		return nil, err
	}

	return &bundle, nil
}

// currentPricePerKG resolves the filament's catalog price at call time.
// A missing filament resolves to 0.
func (r *PrintRepository) currentPricePerKG(filamentID uint) float64 {
	var filament models.Filament
	err := r.db.Select("price_per_kg").First(&filament, "id = ?", filamentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0
	}
	return filament.PricePerKG
}
