package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configFileTokenKey is the token entry of the legacy JSON config file.
const configFileTokenKey = "Discord API Token"

type Config struct {
	Token           string `env:"DISCORD_TOKEN"`
	DatabaseURL     string `env:"DATABASE_URL"`
	DiscordGuildID  string `env:"DISCORD_GUILD_ID"`
	ConfigFile      string `env:"CONFIG_FILE" envDefault:"Config.json"`
	MetricsAddr     string `env:"METRICS_ADDR" envDefault:":2112"`
	MetricsMaxConns int    `env:"METRICS_MAX_CONNS" envDefault:"16"`
	DispatchBuffer  int    `env:"DISPATCH_BUFFER" envDefault:"64"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env, the environment, Docker secrets and finally the JSON config
// file. Secrets win over environment variables; the config file is only consulted
// when no token was found elsewhere.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if token := readSecret("discord_token"); token != "" {
		cfg.Token = token
	}
	if dbURL := readSecret("database_url"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if cfg.Token == "" {
		token, err := readConfigFileToken(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Level returns the slog level named by LogLevel, defaulting to Info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readConfigFileToken reads the token from a flat JSON object such as
// {"Discord API Token": "..."}. A missing file is not an error.
func readConfigFileToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read config file %s: %w", path, err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return "", fmt.Errorf("parse config file %s: %w", path, err)
	}

	return strings.TrimSpace(values[configFileTokenKey]), nil
}
