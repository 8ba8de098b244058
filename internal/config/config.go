package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers.
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"5000"`
	Env            string        `env:"ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	StoreDriver    string        `env:"STORE_DRIVER" envDefault:"mysql"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	DBQueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" envDefault:"true"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimRight(strings.TrimSpace(o), "/")
	}

	switch cfg.StoreDriver {
	case DriverMySQL:
		if cfg.DatabaseDSN == "" {
			return Config{}, errors.New("DATABASE_DSN must be set when STORE_DRIVER is mysql")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.DBQueryTimeout <= 0 {
		return Config{}, errors.New("DB_QUERY_TIMEOUT must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
