package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_HOST/DB_NAME", "are required"})
	}
	if cfg.JWTExpiry <= 0 {
		errs = append(errs, ValidationError{"JWT_EXPIRY", "must be positive"})
	}

	switch cfg.AIProvider {
	case ProviderOpenRouter:
		// Presence only. The key format is never inspected.
		if cfg.OpenRouterAPIKey == "" {
			errs = append(errs, ValidationError{"OPENROUTER_API_KEY", "is required when AI_PROVIDER=openrouter"})
		}
	case ProviderLorem:
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{"AI_PROVIDER", "lorem is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{"AI_PROVIDER", fmt.Sprintf("unknown provider %q", cfg.AIProvider)})
	}

	if cfg.AIGenerationLimit <= 0 {
		errs = append(errs, ValidationError{"AI_GENERATION_LIMIT", "must be positive"})
	}
	if cfg.AIGenerationWindow <= 0 {
		errs = append(errs, ValidationError{"AI_GENERATION_WINDOW", "must be positive"})
	}
	if cfg.OpenRouterTimeout <= 0 {
		errs = append(errs, ValidationError{"OPENROUTER_TIMEOUT", "must be positive"})
	}

	if cfg.Environment == Production {
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"db_user", "secret is required"})
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"db_password", "secret is required"})
		}
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{"jwt_secret", "secret is required"})
		}
	} else if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
