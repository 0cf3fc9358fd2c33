// Package config loads application configuration from a YAML file with
// environment overrides, falling back to defaults when no file exists.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Market  MarketConfig  `mapstructure:"market"`
	Payoff  PayoffConfig  `mapstructure:"payoff"`
	Dates   DatesConfig   `mapstructure:"dates"`
	Logging LoggingConfig `mapstructure:"logging"`
	Slack   SlackConfig   `mapstructure:"slack"`
}

// MarketConfig holds market-wide constants.
type MarketConfig struct {
	RiskFreeRate float64 `mapstructure:"risk_free_rate"`
	LotSize      int     `mapstructure:"lot_size"`
}

// PayoffConfig holds payoff-grid defaults.
type PayoffConfig struct {
	Samples       int     `mapstructure:"samples"`
	RangeFraction float64 `mapstructure:"range_fraction"`
}

// DatesConfig holds the expiry date layout.
type DatesConfig struct {
	Layout string `mapstructure:"layout"`
}

// LoggingConfig holds log level and file rotation settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// SlackConfig enables the Slack bot surface. Tokens come from the
// environment, never from config files.
type SlackConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads config.yaml from the working directory (and path, when given),
// applies OPTIONALYZER_* environment overrides, and validates the result. A
// missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path != "" {
		v.AddConfigPath(path)
	}

	v.SetDefault("market.risk_free_rate", 0.0342)
	v.SetDefault("market.lot_size", 50)
	v.SetDefault("payoff.samples", 200)
	v.SetDefault("payoff.range_fraction", 0.1)
	v.SetDefault("dates.layout", "02-01-2006")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)
	v.SetDefault("slack.enabled", false)

	v.SetEnvPrefix("OPTIONALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Market.LotSize <= 0 {
		return fmt.Errorf("market.lot_size must be positive, got %d", c.Market.LotSize)
	}
	if c.Payoff.Samples < 2 {
		return fmt.Errorf("payoff.samples must be at least 2, got %d", c.Payoff.Samples)
	}
	if c.Payoff.RangeFraction <= 0 || c.Payoff.RangeFraction > 1 {
		return fmt.Errorf("payoff.range_fraction must be in (0, 1], got %v", c.Payoff.RangeFraction)
	}
	if c.Dates.Layout == "" {
		return fmt.Errorf("dates.layout must not be empty")
	}
	return nil
}
