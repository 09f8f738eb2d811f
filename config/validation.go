package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that values required in every environment are set.
// The AI key and S3 bucket are optional: without them the analysis and photo
// upload features degrade, but the rest of the API still serves.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBUser == "" {
		errors = append(errors, "DB_USER is required")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if GetEnvironment() == Production && cfg.AIAPIKey == "" {
		errors = append(errors, "ai_api_key secret is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
