package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"printlog/models"
)

var (
	// ErrDuplicateName is returned when a filament name collides with an
	// existing catalog entry.
	ErrDuplicateName = errors.New("filament name already exists")
	// ErrFilamentInUse is returned when deleting a filament that prints
	// still reference.
	ErrFilamentInUse = errors.New("filament is referenced by existing prints")
)

// FilamentRepository provides CRUD over the filament catalog.
type FilamentRepository struct {
	db *gorm.DB
}

// NewFilamentRepository creates a FilamentRepository on the given handle.
func NewFilamentRepository(db *gorm.DB) *FilamentRepository {
	return &FilamentRepository{db: db}
}

// GetAll returns all filaments ordered by name ascending.
func (r *FilamentRepository) GetAll() ([]models.Filament, error) {
	var filaments []models.Filament
	err := r.db.Order("name ASC").Find(&filaments).Error
	return filaments, err
}

// GetByID returns a single filament or gorm.ErrRecordNotFound.
func (r *FilamentRepository) GetByID(id uint) (*models.Filament, error) {
	var filament models.Filament
	if err := r.db.First(&filament, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &filament, nil
}

// Create inserts a new catalog entry and returns its generated id.
func (r *FilamentRepository) Create(name string, pricePerKG float64) (uint, error) {
	filament := models.Filament{Name: name, PricePerKG: pricePerKG}
	if err := r.db.Create(&filament).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, err
	}
	return filament.ID, nil
}

// Update overwrites name and price. An absent id is a silent no-op.
func (r *FilamentRepository) Update(id uint, name string, pricePerKG float64) error {
	err := r.db.Model(&models.Filament{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":         name,
		"price_per_kg": pricePerKG,
	}).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

// Delete removes a filament. Deletion is refused while any print references
// the entry, so the joined print listing never loses its material row.
func (r *FilamentRepository) Delete(id uint) error {
	var refs int64
	if err := r.db.Model(&models.Print{}).Where("filament_type_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrFilamentInUse
	}
	return r.db.Delete(&models.Filament{}, "id = ?", id).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
