package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// durationCap bounds MAX_DURATION_SEC; questions never run longer than this.
const durationCap = 300

type Config struct {
	// Server
	Port         string
	ClientOrigin string
	TemplateDir  string

	// Logging
	LogLevel slog.Level

	// Polls
	DefaultDurationSec int
	MaxDurationSec     int

	// Websocket
	SendBuffer int
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "4000"),
		ClientOrigin:       getEnvOrDefault("CLIENT_ORIGIN", "*"),
		TemplateDir:        getEnvOrDefault("TEMPLATE_DIR", "./static"),
		LogLevel:           parseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		DefaultDurationSec: getEnvAsIntOrDefault("DEFAULT_DURATION_SEC", 60),
		MaxDurationSec:     getEnvAsIntOrDefault("MAX_DURATION_SEC", 300),
		SendBuffer:         getEnvAsIntOrDefault("SEND_BUFFER", 32),
	}

	if cfg.MaxDurationSec <= 0 || cfg.MaxDurationSec > durationCap {
		cfg.MaxDurationSec = durationCap
	}
	if cfg.DefaultDurationSec <= 0 || cfg.DefaultDurationSec > cfg.MaxDurationSec {
		cfg.DefaultDurationSec = min(60, cfg.MaxDurationSec)
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
