package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the schedule service.
// Values come from defaults, then the YAML file named by CONFIG_FILE,
// then environment variables.
type Config struct {
	Port               string   `yaml:"port" validate:"required,numeric"`
	BaseURL            string   `yaml:"base_url" validate:"omitempty,url"`
	HTTPTimeoutSeconds int      `yaml:"http_timeout_seconds" validate:"min=1,max=300"`
	Timezone           string   `yaml:"timezone" validate:"required"`
	CacheBackend       string   `yaml:"cache_backend" validate:"oneof=memory sqlite postgres redis"`
	CachePrefix        string   `yaml:"cache_prefix"`
	SQLitePath         string   `yaml:"sqlite_path" validate:"required_if=CacheBackend sqlite"`
	DatabaseURL        string   `yaml:"database_url" validate:"required_if=CacheBackend postgres"`
	RedisAddr          string   `yaml:"redis_addr" validate:"required_if=CacheBackend redis"`
	RedisPassword      string   `yaml:"redis_password"`
	RedisDB            int      `yaml:"redis_db" validate:"min=0"`
	LogLevel           string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute" validate:"min=0"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// Location is Timezone resolved by Load.
	Location *time.Location `yaml:"-"`
}

func defaults() Config {
	return Config{
		Port:               "8080",
		HTTPTimeoutSeconds: 10,
		Timezone:           "Asia/Tokyo",
		CacheBackend:       "memory",
		SQLitePath:         "data/cache.db",
		RedisAddr:          "localhost:6379",
		LogLevel:           "info",
		RateLimitPerMinute: 120,
		CORSAllowedOrigins: []string{"*"},
	}
}

// HTTPTimeout is the per-request timeout for the remote schedule service.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads .env if present and builds a validated Config.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("load config: validate: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load config: timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.BaseURL, "BASE_URL")
	setString(&cfg.Timezone, "TIMEZONE")
	setString(&cfg.CacheBackend, "CACHE_BACKEND")
	setString(&cfg.CachePrefix, "CACHE_PREFIX")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	for key, dst := range map[string]*int{
		"HTTP_TIMEOUT_SECONDS":  &cfg.HTTPTimeoutSeconds,
		"REDIS_DB":              &cfg.RedisDB,
		"RATE_LIMIT_PER_MINUTE": &cfg.RateLimitPerMinute,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setString(dst *string, key string) {
	*dst = Get(key, *dst)
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", key, v)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
