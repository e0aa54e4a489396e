package config

import (
	"errors"
	"runtime"
)

// Errors
var (
	ErrNoPatternSpecified = errors.New("must specify either --prefix or --suffix")
	ErrBadLogInterval     = errors.New("--log-interval must be at least 1 second")
)

// Config holds the application configuration. Pattern validation proper
// (hex characters, 0x stripping, case normalization) happens in
// pattern.Build; this layer only checks what the flags themselves must
// satisfy.
type Config struct {
	Workers       int
	Prefix        string
	Suffix        string
	CaseSensitive bool
	LogFile       string
	LogInterval   int // seconds between progress log lines
	Output        string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		LogInterval: 5,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Prefix == "" && c.Suffix == "" {
		return ErrNoPatternSpecified
	}
	if c.LogInterval < 1 {
		return ErrBadLogInterval
	}
	return nil
}

// GetTargetDescription returns a human-readable description of the pattern
func (c *Config) GetTargetDescription() string {
	desc := ""
	if c.Prefix != "" {
		desc = "prefix: " + c.Prefix
	}
	if c.Suffix != "" {
		if desc != "" {
			desc += ", "
		}
		desc += "suffix: " + c.Suffix
	}
	if c.CaseSensitive {
		desc += " (case-sensitive)"
	}
	return desc
}
