// Package config reads twodo settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDir      = "TWODO_DIR"
	EnvKey      = "TWODO_KEY"
	EnvAdapter  = "TWODO_ADAPTER"
	EnvRedisURL = "TWODO_REDIS_URL"
	EnvTimezone = "TWODO_TIMEZONE"
	EnvLogFile  = "TWODO_LOG_FILE"
	EnvLogLevel = "TWODO_LOG_LEVEL"
)

type Config struct {
	Store StoreConfig
	Log   LogConfig
	// Location is the zone date-only deadlines are read in.
	Location *time.Location
}

type StoreConfig struct {
	Dir      string
	Key      string
	Adapter  string
	RedisURL string
}

type LogConfig struct {
	File  string
	Level slog.Level
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment. A missing .env file is not an error; variables already
// set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
	}

	loc, err := parseLocation(getEnv(EnvTimezone, "UTC"))
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(getEnv(EnvLogLevel, "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Store: StoreConfig{
			Dir:      getEnv(EnvDir, ""),
			Key:      getEnv(EnvKey, "notes"),
			Adapter:  getEnv(EnvAdapter, "fs"),
			RedisURL: getEnv(EnvRedisURL, ""),
		},
		Log: LogConfig{
			File:  getEnv(EnvLogFile, ""),
			Level: level,
		},
		Location: loc,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func parseLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvTimezone, name, err)
	}
	return loc, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, s, err)
	}
	return level, nil
}
