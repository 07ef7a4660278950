// Package config loads settings from the environment and an optional .env
// file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Storage
	DBPath    string
	GoalsPath string

	// Player
	Username string

	// Write checklist progress into the goal file
	ChecklistProgress bool

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
	LogFile   string // optional rotating JSON log
}

// Load reads a .env file from the working directory if present, then the
// EQ_* environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("config could not read .env", "error", err)
	}

	home := homeDir()
	return &Config{
		DBPath:            envString("EQ_DB", filepath.Join(home, ".eternal-quest", "quest.db")),
		GoalsPath:         envString("EQ_GOALS", filepath.Join(home, ".eternal-quest", "goals.txt")),
		Username:          envString("EQ_USER", envString("USER", "player")),
		ChecklistProgress: envBool("EQ_CHECKLIST_PROGRESS", true),
		LogLevel:          envString("EQ_LOG_LEVEL", "warn"),
		LogFormat:         envString("EQ_LOG_FORMAT", "text"),
		LogFile:           envString("EQ_LOG_FILE", ""),
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}
