// Package config loads the ambient settings of the bank: logging, storage backend,
// session signing and password hashing. The demonstration scenario itself is fixed.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config stores all configuration for the application.
type Config struct {
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	StoreDriver   string        `mapstructure:"STORE_DRIVER"`
	SQLiteDSN     string        `mapstructure:"SQLITE_DSN"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	BcryptCost    int           `mapstructure:"BCRYPT_COST"`
}

// Load reads configuration from the environment. Callers that want a .env file
// load it into the environment first (godotenv.Load in main).
// Every setting has a default, so an empty environment yields a working config.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("SQLITE_DSN", ":memory:")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "15m")
	v.SetDefault("BCRYPT_COST", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, DriverMemory, DriverSQLite)
	}
	// Accounts live only for the process; a file-backed database would carry them into the next run.
	if c.StoreDriver == DriverSQLite && !IsMemoryDSN(c.SQLiteDSN) {
		return fmt.Errorf("SQLITE_DSN must be an in-memory database (%q or mode=memory), got %q", ":memory:", c.SQLiteDSN)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// Level parses LogLevel, defaulting to INFO.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// randomSecret makes a per-process signing key; tokens do not outlive the process anyway.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
