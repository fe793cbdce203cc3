package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBPath        string
	DBAutoMigrate bool

	// Redis configuration
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisURL       string
	RecipeCacheTTL time.Duration

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Blob storage
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string

	// Logging
	LogLevel  string
	LogFormat string
}

const defaultSecretsDir = "/run/secrets"

var defaultCORSOrigins = []string{
	"https://recipe-sharing-app-kappa.vercel.app",
	"http://localhost:5173",
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
		if err := loadSharedConfig(cfg, true); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadSharedConfig(cfg, false); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads everything from the environment; secrets use the TEST_
// prefixed variables provided by the CI runner.
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = envOr("SERVER_PORT", "8080")
	cfg.ServerHost = envOr("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(envOr("CORS_ORIGINS", ""), defaultCORSOrigins)
	cfg.DBDriver = envOr("DB_DRIVER", "postgres")
	cfg.DBHost = envOr("DB_HOST", "localhost")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = envOr("DB_USER", "postgres")
	cfg.DBName = envOr("DB_NAME", "recipes")
	cfg.DBSSLMode = envOr("DB_SSL_MODE", "disable")
	cfg.DBPath = envOr("DB_PATH", "recipes.db")
	cfg.DBAutoMigrate = true
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = envOr("REDIS_PORT", "6379")
	cfg.RedisDB = 0
	cfg.RecipeCacheTTL = durationOr("RECIPE_CACHE_TTL", 5*time.Minute)
	cfg.TokenTTL = durationOr("TOKEN_TTL", 24*time.Hour)
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Region = envOr("AWS_REGION", "us-east-1")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")
	cfg.LogLevel = envOr("LOG_LEVEL", "info")
	cfg.LogFormat = envOr("LOG_FORMAT", "json")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
}

// loadSharedConfig resolves each value from a Docker secret first, then the
// environment. Defaults are only applied outside production.
func loadSharedConfig(cfg *Config, defaults bool) error {
	def := func(v string) string {
		if defaults {
			return v
		}
		return ""
	}

	cfg.ServerPort = lookup("server_port", "SERVER_PORT", "8080")
	cfg.ServerHost = lookup("server_host", "SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(lookup("cors_origins", "CORS_ORIGINS", ""), defaultCORSOrigins)
	cfg.DBDriver = lookup("db_driver", "DB_DRIVER", "postgres")
	cfg.DBHost = lookup("db_host", "DB_HOST", def("localhost"))
	cfg.DBPort = lookup("db_port", "DB_PORT", "5432")
	cfg.DBUser = lookup("db_user", "DB_USER", def("postgres"))
	cfg.DBPassword = lookup("db_password", "DB_PASSWORD", def("postgres"))
	cfg.DBName = lookup("db_name", "DB_NAME", "recipes")
	cfg.DBSSLMode = lookup("db_ssl_mode", "DB_SSL_MODE", def("disable"))
	cfg.DBPath = lookup("db_path", "DB_PATH", "recipes.db")
	cfg.RedisHost = lookup("redis_host", "REDIS_HOST", "")
	cfg.RedisPort = lookup("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = lookup("redis_url", "REDIS_URL", "")
	cfg.JWTSecret = lookup("jwt_secret", "JWT_SECRET", def("development-secret-change-me"))
	cfg.S3Bucket = lookup("s3_bucket_name", "S3_BUCKET_NAME", "")
	cfg.S3Region = lookup("aws_region", "AWS_REGION", "us-east-1")
	cfg.S3Endpoint = lookup("s3_endpoint", "S3_ENDPOINT", "")
	cfg.S3PublicBaseURL = lookup("s3_public_base_url", "S3_PUBLIC_BASE_URL", "")
	cfg.LogLevel = lookup("log_level", "LOG_LEVEL", "info")
	cfg.LogFormat = lookup("log_format", "LOG_FORMAT", def("console"))
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	redisDB, err := strconv.Atoi(lookup("redis_db", "REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	autoMigrate, err := strconv.ParseBool(lookup("db_auto_migrate", "DB_AUTO_MIGRATE", strconv.FormatBool(defaults)))
	if err != nil {
		return fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}
	cfg.DBAutoMigrate = autoMigrate

	if cfg.TokenTTL, err = time.ParseDuration(lookup("token_ttl", "TOKEN_TTL", "24h")); err != nil {
		return fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.RecipeCacheTTL, err = time.ParseDuration(lookup("recipe_cache_ttl", "RECIPE_CACHE_TTL", "5m")); err != nil {
		return fmt.Errorf("invalid RECIPE_CACHE_TTL: %w", err)
	}

	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup returns the Docker secret, then the environment variable, then def.
func lookup(secret, envVar, def string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return envOr(envVar, def)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

func splitList(raw string, def []string) []string {
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
