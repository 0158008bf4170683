package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"printlog/models"
)

// InitDatabase opens the sqlite database file, ensures the schema and seeds
// the filament catalog on a fresh install. The returned handle is passed to
// every repository; there is no package-level singleton.
func InitDatabase(cfg AppConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger:         gLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writes itself; a small pool is enough
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&models.Filament{}, &models.Print{}); err != nil {
		return nil, err
	}

	if err := seedFilaments(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedFilaments fills an empty catalog with the workshop's standard
// materials so a fresh install is usable right away.
func seedFilaments(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Filament{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []models.Filament{
		{Name: "PLA Schwarz", PricePerKG: 20.00},
		{Name: "PLA Weiss", PricePerKG: 20.00},
		{Name: "PETG Transparent", PricePerKG: 25.00},
		{Name: "ABS Rot", PricePerKG: 22.00},
		{Name: "TPU Flexibel", PricePerKG: 35.00},
	}
	return db.Create(&seed).Error
}

func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
