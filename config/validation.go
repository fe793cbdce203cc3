package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// minProductionSecretLen is the shortest JWT secret accepted in production.
const minProductionSecretLen = 32

// ValidateConfig checks the loaded values for the configured environment and
// reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var problems []error

	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)
	require("JWT_SECRET", cfg.JWTSecret)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_NAME", cfg.DBName)
		if cfg.Environment == Production || cfg.Environment == CI {
			require("DB_PASSWORD", cfg.DBPassword)
		}
	case "sqlite":
		require("DB_PATH", cfg.DBPath)
		if cfg.Environment == Production {
			problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
	default:
		problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.Environment == Production && len(cfg.JWTSecret) > 0 && len(cfg.JWTSecret) < minProductionSecretLen {
		problems = append(problems, ValidationError{
			Field:   "JWT_SECRET",
			Message: fmt.Sprintf("must be at least %d characters in production", minProductionSecretLen),
		})
	}
	if cfg.TokenTTL <= 0 {
		problems = append(problems, ValidationError{Field: "TOKEN_TTL", Message: "must be positive"})
	}
	if cfg.RecipeCacheTTL < 0 || (cfg.RecipeCacheTTL > 0 && cfg.RecipeCacheTTL < time.Second) {
		problems = append(problems, ValidationError{Field: "RECIPE_CACHE_TTL", Message: "must be zero or at least 1s"})
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		problems = append(problems, ValidationError{Field: "LOG_FORMAT", Message: "must be json or console"})
	}

	return errors.Join(problems...)
}
