package engine

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/viant/vecdex/vector"
)

// Config holds the runtime settings of the vector functions.
type Config struct {
	DSN   string `env:"VECDEX_DSN" envDefault:":memory:"`
	Debug bool   `env:"VECDEX_DEBUG" envDefault:"false"`

	// Codec limits.
	MaxDim  int `env:"VECDEX_MAX_DIM" envDefault:"250000000"`
	MaxText int `env:"VECDEX_MAX_TEXT" envDefault:"1000000000"`
	// ScanCap bounds Codec.Parse and Codec.Dim called with a negative
	// limit. SQL text arguments carry their length and are not capped.
	ScanCap int `env:"VECDEX_SCAN_CAP" envDefault:"1048575"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("engine: failed to parse config: %w", err)
	}
	return cfg, nil
}

// Codec returns the vector codec configured with the limits of c.
func (c *Config) Codec() vector.Codec {
	return vector.Codec{MaxDim: c.MaxDim, MaxText: c.MaxText, ScanCap: c.ScanCap}
}
