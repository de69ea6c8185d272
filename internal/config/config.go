package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Config holds runtime configuration sourced from an optional YAML file and env vars.
type Config struct {
	Port            string
	StorageDriver   string
	SQLitePath      string
	DatabaseURL     string
	S3              S3Config
	JWTSecret       string
	JWTIssuer       string
	ProfileTTL      time.Duration
	ProfileCache    int
	CORSOrigins     []string
	InitialBalance  float64
	NotificationTTL time.Duration
	MarketTick      time.Duration
	HomePage        string
	LoginPage       string
	LogLevel        string
}

// S3Config addresses the bucket used by the s3 storage driver.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// fileConfig is the CONFIG_FILE layout.
type fileConfig struct {
	Port                   string   `yaml:"port"`
	StorageDriver          string   `yaml:"storage_driver"`
	SQLitePath             string   `yaml:"sqlite_path"`
	DatabaseURL            string   `yaml:"database_url"`
	S3                     S3Config `yaml:"s3"`
	JWTSecret              string   `yaml:"jwt_secret"`
	JWTIssuer              string   `yaml:"jwt_issuer"`
	ProfileTTLHours        int      `yaml:"profile_ttl_hours"`
	ProfileCacheSize       int      `yaml:"profile_cache_size"`
	CORSOrigins            []string `yaml:"cors_allowed_origins"`
	InitialBalance         float64  `yaml:"initial_balance"`
	NotificationTTLSeconds int      `yaml:"notification_ttl_seconds"`
	MarketTickSeconds      int      `yaml:"market_tick_seconds"`
	HomePage               string   `yaml:"home_page"`
	LoginPage              string   `yaml:"login_page"`
	LogLevel               string   `yaml:"log_level"`
}

// Load reads configuration from the environment and performs minimal validation.
// When CONFIG_FILE is set its YAML values are applied first and env vars override them.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	var file fileConfig
	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	env := func(key, fileValue, def string) string {
		return fallback(getenv(key), fallback(fileValue, def))
	}

	cfg := Config{
		Port:          env("PORT", file.Port, "8080"),
		StorageDriver: strings.ToLower(env("STORAGE_DRIVER", file.StorageDriver, DriverSQLite)),
		SQLitePath:    env("SQLITE_PATH", file.SQLitePath, "quantum.db"),
		DatabaseURL:   env("DATABASE_URL", file.DatabaseURL, ""),
		S3: S3Config{
			Bucket:    env("S3_BUCKET", file.S3.Bucket, ""),
			Prefix:    env("S3_PREFIX", file.S3.Prefix, "quantum"),
			Region:    env("S3_REGION", file.S3.Region, "us-east-1"),
			Endpoint:  env("S3_ENDPOINT", file.S3.Endpoint, ""),
			AccessKey: env("S3_ACCESS_KEY", file.S3.AccessKey, ""),
			SecretKey: env("S3_SECRET_KEY", file.S3.SecretKey, ""),
		},
		JWTSecret: env("JWT_SECRET", file.JWTSecret, ""),
		JWTIssuer: env("JWT_ISSUER", file.JWTIssuer, "quantum-trade"),
		HomePage:  env("HOME_PAGE", file.HomePage, "home.html"),
		LoginPage: env("LOGIN_PAGE", file.LoginPage, "auth.html?type=login"),
		LogLevel:  strings.ToLower(env("LOG_LEVEL", file.LogLevel, "info")),
	}

	origins := strings.Join(file.CORSOrigins, ",")
	cfg.CORSOrigins = parseCSV(env("CORS_ALLOWED_ORIGINS", origins, "*"))

	cfg.ProfileTTL = time.Duration(positiveInt(getenv("PROFILE_TTL_HOURS"), file.ProfileTTLHours, 24*30)) * time.Hour
	cfg.ProfileCache = positiveInt(getenv("PROFILE_CACHE_SIZE"), file.ProfileCacheSize, 1024)
	cfg.NotificationTTL = time.Duration(positiveInt(getenv("NOTIFICATION_TTL_SECONDS"), file.NotificationTTLSeconds, 5)) * time.Second
	cfg.MarketTick = time.Duration(positiveInt(getenv("MARKET_TICK_SECONDS"), file.MarketTickSeconds, 3)) * time.Second

	cfg.InitialBalance = 10000
	if file.InitialBalance > 0 {
		cfg.InitialBalance = file.InitialBalance
	}
	if raw := strings.TrimSpace(getenv("INITIAL_BALANCE")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			cfg.InitialBalance = v
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres storage driver")
		}
	case DriverS3:
		if c.S3.Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(envValue string, fileValue, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(envValue)); err == nil && n > 0 {
		return n
	}
	if fileValue > 0 {
		return fileValue
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
