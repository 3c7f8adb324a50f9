package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		mode := fl.Field().String()
		return mode == "" || mode == "onetime" || mode == "automated"
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "json", "console", "text":
			return true
		}
		return false
	})

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			messages := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf(
					"field '%s' failed on the '%s' rule (value: '%v')",
					fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value(),
				))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(messages, "; "))
		}
		return err
	}

	if cfg.NotificationConfig.Email.Enabled && cfg.NotificationConfig.Email.FromAddress == "" {
		return fmt.Errorf("config validation failed: email notifications enabled but from_address is empty")
	}
	return nil
}
