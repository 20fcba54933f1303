// Package config holds the plugin configuration surface.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for the Metal Archives plugin.
type Config struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	BaseURL            string  `json:"base_url" yaml:"base_url"`                         // gateway base URL
	UserAgent          string  `json:"user_agent" yaml:"user_agent"`                     // User-Agent for gateway requests
	RateLimit          float64 `json:"rate_limit" yaml:"rate_limit"`                     // requests per second
	CacheDurationHours int     `json:"cache_duration_hours" yaml:"cache_duration_hours"` // response cache TTL
	SourceWeight       float64 `json:"source_weight" yaml:"source_weight"`               // distance contribution for this source
	Lyrics             bool    `json:"lyrics" yaml:"lyrics"`                             // enable the lyrics import stage
	LyricsSearch       bool    `json:"lyrics_search" yaml:"lyrics_search"`               // fallback lyrics search for non-source tracks
	Instrumental       string  `json:"instrumental" yaml:"instrumental"`                 // replacement for the instrumental marker
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:            true,
		UserAgent:          "beets-metalarchives/1.0",
		RateLimit:          1.0,
		CacheDurationHours: 168, // 1 week
		SourceWeight:       1.0,
		Lyrics:             false,
		LyricsSearch:       false,
		Instrumental:       "",
	}
}

// LoadFile reads a YAML configuration file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyOverrides applies configuration overrides from a string map, as
// handed over by the host in the plugin context.
func (c *Config) ApplyOverrides(overrides map[string]string) error {
	for key, value := range overrides {
		switch key {
		case "enabled":
			val, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value for enabled: %s", value)
			}
			c.Enabled = val
		case "base_url":
			c.BaseURL = value
		case "user_agent":
			c.UserAgent = value
		case "rate_limit":
			val, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid float value for rate_limit: %s", value)
			}
			c.RateLimit = val
		case "cache_duration_hours":
			val, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer value for cache_duration_hours: %s", value)
			}
			c.CacheDurationHours = val
		case "source_weight":
			val, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid float value for source_weight: %s", value)
			}
			c.SourceWeight = val
		case "lyrics":
			val, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value for lyrics: %s", value)
			}
			c.Lyrics = val
		case "lyrics_search":
			val, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value for lyrics_search: %s", value)
			}
			c.LyricsSearch = val
		case "instrumental":
			c.Instrumental = value
		default:
			// Ignore unknown configuration keys.
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	if c.CacheDurationHours <= 0 {
		return fmt.Errorf("cache_duration_hours must be positive")
	}
	if c.SourceWeight < 0 {
		return fmt.Errorf("source_weight must be non-negative")
	}
	return nil
}
