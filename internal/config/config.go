// Package config loads runtime settings: built-in defaults, then an optional
// YAML file named by CONFIG_PATH, then environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const minSessionSecret = 32

// Config holds every runtime setting.
type Config struct {
	Port string `yaml:"port"`

	StorageDriver  string `yaml:"storage_driver"`
	DatabasePath   string `yaml:"database_path"`
	RedisAddr      string `yaml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`
	RedisKeyPrefix string `yaml:"redis_key_prefix"`
	PostgresDSN    string `yaml:"postgres_dsn"`

	AdminPassword     string        `yaml:"admin_password"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	SessionSecret     string        `yaml:"session_secret"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	CookieSecure      bool          `yaml:"cookie_secure"`

	MaxUploadBytes      int64  `yaml:"max_upload_bytes"`
	Organization        string `yaml:"organization"`
	OrganizationName    string `yaml:"organization_name"`
	ExportRatePerMinute int    `yaml:"export_rate_per_minute"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Port:                "8080",
		StorageDriver:       DriverSQLite,
		DatabasePath:        "employee-pass.db",
		RedisAddr:           "localhost:6379",
		RedisKeyPrefix:      "passgen:",
		SessionTTL:          24 * time.Hour,
		CookieSecure:        true,
		MaxUploadBytes:      10 << 20,
		Organization:        "GLOBAL ASSOC.",
		OrganizationName:    "Global Association",
		ExportRatePerMinute: 30,
		LogLevel:            "info",
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment read through getenv, then validates it for serving.
func Load(getenv func(string) string) (*Config, error) {
	cfg, err := Read(getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation. Offline commands use it and check only
// the settings they need.
func Read(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path := getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("STORAGE_DRIVER", &c.StorageDriver)
	str("DATABASE_PATH", &c.DatabasePath)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	str("REDIS_KEY_PREFIX", &c.RedisKeyPrefix)
	str("POSTGRES_DSN", &c.PostgresDSN)
	str("ADMIN_PASSWORD", &c.AdminPassword)
	str("ADMIN_PASSWORD_HASH", &c.AdminPasswordHash)
	str("SESSION_SECRET", &c.SessionSecret)
	str("ORGANIZATION", &c.Organization)
	str("ORGANIZATION_NAME", &c.OrganizationName)
	str("LOG_LEVEL", &c.LogLevel)

	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		c.RedisDB = n
	}
	if v := getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	// Secure cookies stay on unless explicitly disabled for local development.
	if v := getenv("COOKIE_SECURE"); v != "" {
		c.CookieSecure = v != "false"
	}
	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := getenv("EXPORT_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EXPORT_RATE_PER_MINUTE: %w", err)
		}
		c.ExportRatePerMinute = n
	}
	return nil
}

// Validate reports every problem with the settings at once.
func (c *Config) Validate() error {
	errs := []error{c.ValidateStorage()}

	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if len(c.SessionSecret) < minSessionSecret {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d characters for HMAC-SHA256 security", minSessionSecret))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.ExportRatePerMinute <= 0 {
		errs = append(errs, errors.New("EXPORT_RATE_PER_MINUTE must be positive"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateStorage checks only the settings of the selected storage driver.
func (c *Config) ValidateStorage() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", s)
}
