// Package config loads rainbow's settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	LogLevel string

	Workers     int
	SourceFile  string
	Schedule    string
	MetricsAddr string
}

func Load() Config {
	return Config{
		AppEnv:      getEnv("RAINBOW_ENV", "dev"),
		LogLevel:    getEnv("RAINBOW_LOG_LEVEL", "info"),
		Workers:     getEnvInt("RAINBOW_WORKERS", 4),
		SourceFile:  getEnv("RAINBOW_SOURCE_FILE", ""),
		Schedule:    getEnv("RAINBOW_SCHEDULE", ""),
		MetricsAddr: getEnv("RAINBOW_METRICS_ADDR", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
