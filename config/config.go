package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration. Every default below is
// meant for local development only; ADMIN_PASSWORD and JWT_SECRET must be
// overridden in production.
type AppConfig struct {
	AppPort       string `env:"APP_PORT" envDefault:"8000"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev_secret_key_change_in_production"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"data/prints.db"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"static"`

	GinMode        string   `env:"GIN_MODE" envDefault:"release"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath       string `env:"LOG_PATH"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`
	LogCompress   bool   `env:"LOG_COMPRESS" envDefault:"false"`
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
