package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/urlhandler"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.WrapError(common.ErrInvalidConfiguration, "configuration is nil")
	}

	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case ModeOnetime, ModeInteractive:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("targetmode", func(fl validator.FieldLevel) bool {
		mode := fl.Field().String()
		return mode == "" || urlhandler.IsValidTargetMode(mode)
	})

	_ = validate.RegisterValidation("codec", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "zstd", "gzip", "snappy", "none":
			return true
		default:
			return false
		}
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return common.WrapError(err, "configuration validation error")
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		fieldName := strings.TrimPrefix(e.StructNamespace(), "GlobalConfig.")
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", fieldName, e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("%w: validation failed:\n  %s", common.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
}
