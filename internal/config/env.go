package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds settings for the leaderboard API server.
type ServerConfig struct {
	HTTPAddr string `env:"PINKYTYPE_HTTP_ADDR" envDefault:":8080"`
	DBPath   string `env:"PINKYTYPE_DB_PATH"`
	LogLevel string `env:"PINKYTYPE_LOG_LEVEL" envDefault:"info"`
}

// LoadServerConfig reads ServerConfig from the environment. An empty DBPath
// falls back to DefaultDBPath.
func LoadServerConfig() (ServerConfig, error) {
	cfg, err := env.ParseAs[ServerConfig]()
	if err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q (available: debug, info, warn, error)", s)
	}
	return level, nil
}
