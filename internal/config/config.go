package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config represents the application configuration.
type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Market     MarketConfig     `toml:"market"`
	Snapshot   SnapshotConfig   `toml:"snapshot"`
	Logging    LoggingConfig    `toml:"logging"`
}

// SimulationConfig tunes the background tasks.
type SimulationConfig struct {
	PriceUpdateInterval Duration `toml:"price_update_interval"`
	NewsInterval        Duration `toml:"news_interval"`
	DividendInterval    Duration `toml:"dividend_interval"`
	PriceDrawMin        int64    `toml:"price_draw_min"`
	PriceDrawMax        int64    `toml:"price_draw_max"`
	DividendPerUnit     float64  `toml:"dividend_per_unit"`
	ImpactDiscount      float64  `toml:"impact_discount"`
	TerribleNewsFactor  float64  `toml:"terrible_news_factor"`
}

// MarketConfig tunes the market lifecycle.
type MarketConfig struct {
	TransitionDelay Duration `toml:"transition_delay"`
}

// SnapshotConfig locates the market-state snapshot file.
type SnapshotConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// An empty path loads defaults and env overrides only.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies EXCHANGE_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("EXCHANGE_PRICE_UPDATE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Simulation.PriceUpdateInterval = Duration(d)
		}
	}
	if v := os.Getenv("EXCHANGE_NEWS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Simulation.NewsInterval = Duration(d)
		}
	}
	if v := os.Getenv("EXCHANGE_DIVIDEND_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Simulation.DividendInterval = Duration(d)
		}
	}
	if v := os.Getenv("EXCHANGE_TRANSITION_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Market.TransitionDelay = Duration(d)
		}
	}
	if v := os.Getenv("EXCHANGE_SNAPSHOT_PATH"); v != "" {
		config.Snapshot.Path = v
	}
	if v := os.Getenv("EXCHANGE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("EXCHANGE_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	if v := os.Getenv("EXCHANGE_DIVIDEND_PER_UNIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.DividendPerUnit = f
		}
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.PriceUpdateInterval <= 0 {
		return errors.New("price_update_interval must be positive")
	}
	if c.Simulation.NewsInterval <= 0 {
		return errors.New("news_interval must be positive")
	}
	if c.Simulation.DividendInterval <= 0 {
		return errors.New("dividend_interval must be positive")
	}
	if c.Market.TransitionDelay < 0 {
		return errors.New("transition_delay must not be negative")
	}
	if c.Simulation.PriceDrawMin < 0 || c.Simulation.PriceDrawMin >= c.Simulation.PriceDrawMax {
		return errors.New("price draw range must satisfy 0 <= min < max")
	}
	if c.Simulation.DividendPerUnit < 0 {
		return errors.New("dividend_per_unit must not be negative")
	}
	if c.Simulation.ImpactDiscount <= 0 || c.Simulation.ImpactDiscount > 1 {
		return errors.New("impact_discount must be in (0, 1]")
	}
	if c.Simulation.TerribleNewsFactor <= 0 {
		return errors.New("terrible_news_factor must be positive")
	}
	return nil
}

// DividendPerUnitDecimal returns the dividend amount as a decimal.
func (c *Config) DividendPerUnitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Simulation.DividendPerUnit)
}

// ImpactDiscountDecimal returns the market-impact factor as a decimal.
// A configured discount of 0.9 means a purchased asset's price drops to 90%.
func (c *Config) ImpactDiscountDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Simulation.ImpactDiscount)
}

// TerribleNewsFactorDecimal returns the single-position shock factor applied
// by terrible news.
func (c *Config) TerribleNewsFactorDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Simulation.TerribleNewsFactor)
}
