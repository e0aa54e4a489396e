package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "no pattern",
			mutate:  func(c *Config) {},
			wantErr: ErrNoPatternSpecified,
		},
		{
			name:   "prefix only",
			mutate: func(c *Config) { c.Prefix = "dead" },
		},
		{
			name:   "suffix only",
			mutate: func(c *Config) { c.Suffix = "beef" },
		},
		{
			name: "bad log interval",
			mutate: func(c *Config) {
				c.Prefix = "ab"
				c.LogInterval = 0
			},
			wantErr: ErrBadLogInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTargetDescription(t *testing.T) {
	cfg := NewConfig()
	cfg.Prefix = "dead"
	cfg.Suffix = "beef"
	cfg.CaseSensitive = true
	want := "prefix: dead, suffix: beef (case-sensitive)"
	if got := cfg.GetTargetDescription(); got != want {
		t.Errorf("GetTargetDescription() = %q, want %q", got, want)
	}
}
