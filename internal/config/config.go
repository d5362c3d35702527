package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"nexuspos/internal/domain"
)

type Config struct {
	Port        int
	DatabaseURL string
	Settings    domain.AppSettings
}

// Load reads configuration from the environment, with an optional .env file
// in the working directory filling in anything not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port: 8080,
		Settings: domain.AppSettings{
			CompanyName:     "Nexus B2B",
			Currency:        "$",
			TaxRate:         0,
			DefaultMinStock: 5,
		},
	}

	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT: %q", raw)
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required (environment variable or .env)")
	}

	if raw := strings.TrimSpace(os.Getenv("COMPANY_NAME")); raw != "" {
		cfg.Settings.CompanyName = raw
	}
	if raw := strings.TrimSpace(os.Getenv("CURRENCY")); raw != "" {
		cfg.Settings.Currency = raw
	}
	if raw := strings.TrimSpace(os.Getenv("TAX_RATE")); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			return Config{}, fmt.Errorf("invalid TAX_RATE: %q", raw)
		}
		cfg.Settings.TaxRate = rate
	}
	if raw := strings.TrimSpace(os.Getenv("DEFAULT_MIN_STOCK")); raw != "" {
		minStock, err := strconv.Atoi(raw)
		if err != nil || minStock < 0 {
			return Config{}, fmt.Errorf("invalid DEFAULT_MIN_STOCK: %q", raw)
		}
		cfg.Settings.DefaultMinStock = minStock
	}

	return cfg, nil
}
