// Package config loads settings for the axon binary: built-in defaults,
// then an optional axon.toml, then AXON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Store backends accepted in StoreConfig.Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the axon binary's settings.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Log    LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address string
	Title   string
}

// StoreConfig selects the persistence backend behind the demo app.
type StoreConfig struct {
	// Backend is one of memory, file or sqlite.
	Backend string

	// Path is the file store directory or the sqlite database file.
	// Empty picks a backend-specific default in the working directory.
	Path string
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string // debug, info, warn or error
	Format string // text or json
}

// Load reads configuration from defaults, an optional config file and the
// environment. The file is axon.toml in the working directory unless
// AXON_CONFIG points elsewhere; a missing search-path file is fine, a
// missing explicit file or a malformed one is not. Env overrides use the
// AXON_ prefix, e.g. AXON_STORE_BACKEND=sqlite.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8420")
	v.SetDefault("server.title", "Axon")
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("toml")
	if path := os.Getenv("AXON_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("axon")
	}

	v.SetEnvPrefix("AXON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the process logger described by c, writing to stderr.
func NewLogger(c LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
