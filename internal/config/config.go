package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid marks a configuration that fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds server configuration values.
type Config struct {
	Addr               string        `mapstructure:"addr" yaml:"addr"`
	OpsAddr            string        `mapstructure:"ops_addr" yaml:"ops_addr"`
	LogLevel           string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile            string        `mapstructure:"log_file" yaml:"log_file"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DefaultWidth       int           `mapstructure:"default_width" yaml:"default_width"`
	DefaultHeight      int           `mapstructure:"default_height" yaml:"default_height"`
	MaxInputsPerMinute int           `mapstructure:"max_inputs_per_minute" yaml:"max_inputs_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:            ":23",
		OpsAddr:         ":8080",
		LogLevel:        "info",
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		DefaultWidth:    200,
		DefaultHeight:   80,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.OpsAddr != "" {
		c.OpsAddr = other.OpsAddr
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.WriteTimeout != 0 {
		c.WriteTimeout = other.WriteTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.DefaultWidth != 0 {
		c.DefaultWidth = other.DefaultWidth
	}
	if other.DefaultHeight != 0 {
		c.DefaultHeight = other.DefaultHeight
	}
	if other.MaxInputsPerMinute != 0 {
		c.MaxInputsPerMinute = other.MaxInputsPerMinute
	}
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalid)
	}
	if c.DefaultWidth <= 0 || c.DefaultHeight <= 0 {
		return fmt.Errorf("%w: default viewport %dx%d", ErrInvalid, c.DefaultWidth, c.DefaultHeight)
	}
	if c.MaxInputsPerMinute < 0 {
		return fmt.Errorf("%w: max_inputs_per_minute must not be negative", ErrInvalid)
	}
	return nil
}
