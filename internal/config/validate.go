package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

const (
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minDispatchBuffer = 1
	maxDispatchBuffer = 4096

	minMetricsConns = 1
	maxMetricsConns = 1024
)

// Validate checks every field and returns all failures at once using errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateGuildID(); err != nil {
		errs = append(errs, err)
	}

	if err := validateRange("DISPATCH_BUFFER", c.DispatchBuffer, minDispatchBuffer, maxDispatchBuffer); err != nil {
		errs = append(errs, err)
	}

	if err := validateRange("METRICS_MAX_CONNS", c.MetricsMaxConns, minMetricsConns, maxMetricsConns); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateLogging(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set (env var, secret or %s)", c.ConfigFile)
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

// validateGuildID allows an empty ID, which registers commands globally.
func (c *Config) validateGuildID() error {
	if c.DiscordGuildID == "" {
		return nil
	}
	if _, err := snowflake.Parse(c.DiscordGuildID); err != nil {
		return fmt.Errorf("DISCORD_GUILD_ID must be a snowflake, got %q", c.DiscordGuildID)
	}
	return nil
}

func (c *Config) validateLogging() error {
	var errs []error

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

func validateRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", field, lo, hi, value)
	}
	return nil
}
