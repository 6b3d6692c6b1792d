package config

import "time"

// NewDefaultConfig creates a configuration with default values. The
// intervals match the original simulator cadence: prices every 50 s, news
// and dividends every 12 s, a 1 s market transition delay.
func NewDefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			PriceUpdateInterval: Duration(50 * time.Second),
			NewsInterval:        Duration(12 * time.Second),
			DividendInterval:    Duration(12 * time.Second),
			PriceDrawMin:        50,
			PriceDrawMax:        200,
			DividendPerUnit:     1.0,
			ImpactDiscount:      0.9,
			TerribleNewsFactor:  0.5,
		},
		Market: MarketConfig{
			TransitionDelay: Duration(time.Second),
		},
		Snapshot: SnapshotConfig{
			Path: "market_state.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
