package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	TimeCamp struct {
		APIToken      string
		BaseURL       string // default: https://www.timecamp.com/third_party/api
		StrictFilters bool
	}
	MySQL struct {
		DSN string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true
	}
	SQLite struct {
		Path string // export file; empty disables the sink
	}
	HTTP struct {
		Addr string // default :8080
	}
	LogLevel slog.Level
}

// Load reads a .env file from the working directory when present, then
// configuration from environment variables. Variables already set in the
// environment win over .env values.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	cfg.TimeCamp.APIToken = strings.TrimSpace(os.Getenv("TIMECAMP_API_TOKEN"))
	cfg.TimeCamp.BaseURL = os.Getenv("TIMECAMP_BASE_URL")
	if cfg.TimeCamp.BaseURL == "" {
		cfg.TimeCamp.BaseURL = "https://www.timecamp.com/third_party/api"
	}
	if v := os.Getenv("TIMECAMP_STRICT_FILTERS"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.New("TIMECAMP_STRICT_FILTERS must be a boolean")
		}
		cfg.TimeCamp.StrictFilters = strict
	}

	cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")
	cfg.SQLite.Path = os.Getenv("SQLITE_PATH")

	cfg.HTTP.Addr = os.Getenv("HTTP_ADDR")
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// HasSinks reports whether any export sink is configured.
func (c Config) HasSinks() bool { return c.MySQL.DSN != "" || c.SQLite.Path != "" }
