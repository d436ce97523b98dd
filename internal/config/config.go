package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ugaemi/prophunt-server/internal/game"
)

type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	DatabaseURL string

	// MatchConfig is an optional YAML file overriding game.DefaultConfig.
	MatchConfig string

	SeatTokenSecret string
	SeatTokenTTL    time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnvInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		DatabaseURL:     getEnv("DATABASE_URL", "file:prophunt.db"),
		MatchConfig:     getEnv("MATCH_CONFIG", ""),
		SeatTokenSecret: getEnv("SEAT_TOKEN_SECRET", ""),
		SeatTokenTTL:    getEnvDuration("SEAT_TOKEN_TTL", 30*time.Minute),
	}
}

// LoadMatch reads match settings from a YAML file. Keys missing from the
// file keep their default value. An empty path returns the defaults.
func LoadMatch(path string) (game.Config, error) {
	cfg := game.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read match config: %w", err)
	}
	return ParseMatch(data)
}

// ParseMatch overlays YAML data on the default match settings and validates
// the result.
func ParseMatch(data []byte) (game.Config, error) {
	cfg := game.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse match config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
