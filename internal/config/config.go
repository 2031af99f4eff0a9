package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Admin auth. Empty token disables auth entirely (development
	// mode) — never deploy to production without one.
	AdminToken string `env:"ADMIN_TOKEN"`

	// Estimate
	OffsetRate decimal.Decimal `env:"OFFSET_RATE" envDefault:"0.02"`

	// Widget defaults, used when a merchant has no override
	DefaultPlacement string `env:"DEFAULT_PLACEMENT" envDefault:"#cart_container"`
	DefaultVerbiage  string `env:"DEFAULT_VERBIAGE" envDefault:"Reduce my order's carbon footprint"`

	// CORS
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// AuthDisabled reports whether admin routes run without a bearer check.
func (c *Config) AuthDisabled() bool {
	return c.AdminToken == ""
}
