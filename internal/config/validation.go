// Package config provides configuration management for the Value Scout application.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs validations that span multiple fields
func validateCrossField(cfg *Config) error {
	if cfg.Model.EdgeThreshold >= 1.0 {
		return fmt.Errorf("model.edge_threshold must be below 1.0, got %f", cfg.Model.EdgeThreshold)
	}

	for _, key := range cfg.OddsFeed.SportKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("odds_feed.sport_keys must not contain empty entries")
		}
	}

	if cfg.Schedule.LiveUpdateIntervalSeconds > cfg.Schedule.RefreshIntervalSeconds {
		return fmt.Errorf(
			"schedule.live_update_interval_seconds (%d) must not exceed refresh_interval_seconds (%d)",
			cfg.Schedule.LiveUpdateIntervalSeconds, cfg.Schedule.RefreshIntervalSeconds,
		)
	}

	return nil
}

// formatValidationErrors converts validator errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation rule '%s'",
			fieldErr.Namespace(), fieldErr.Tag(),
		))
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(messages, "; "))
}
