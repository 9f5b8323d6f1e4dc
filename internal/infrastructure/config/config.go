package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Batch defaults offered by the console prompts
	SavingsInterestRate  float64 `env:"SAVINGS_INTEREST_RATE"  envDefault:"2.5"`
	CurrentAccountCharge float64 `env:"CURRENT_ACCOUNT_CHARGE" envDefault:"10"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
