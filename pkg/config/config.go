package config

import (
	"errors"
	"slices"
)

// Config is the gridctl configuration. Field tags use mapstructure for
// viper unmarshalling.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Grid    GridConfig    `mapstructure:"grid"`
	Headers HeadersConfig `mapstructure:"headers"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GridConfig struct {
	Rows    int `mapstructure:"rows"`
	Columns int `mapstructure:"columns"`
}

type HeadersConfig struct {
	// File holds the nested headers in YAML. Empty means no nested headers.
	File string `mapstructure:"file"`
}

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultRows      = 0
	DefaultColumns   = 0
)

var logFormats = []string{"text", "json"}

var (
	ErrInvalidLogFormat = errors.New("logging.format must be text or json")
	ErrInvalidRows      = errors.New("grid.rows must be non-negative")
	ErrInvalidColumns   = errors.New("grid.columns must be non-negative")
)

func (c *Config) Validate() error {
	if !slices.Contains(logFormats, c.Logging.Format) {
		return ErrInvalidLogFormat
	}
	if c.Grid.Rows < 0 {
		return ErrInvalidRows
	}
	if c.Grid.Columns < 0 {
		return ErrInvalidColumns
	}
	return nil
}
