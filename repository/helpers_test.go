package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"printlog/models"
)

// newTestDB opens an isolated in-memory sqlite database migrated with the
// full schema. Each test gets its own named database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Filament{}, &models.Print{}))
	return db
}

func mustCreateFilament(t *testing.T, repo *FilamentRepository, name string, pricePerKG float64) uint {
	t.Helper()
	id, err := repo.Create(name, pricePerKG)
	require.NoError(t, err)
	return id
}
