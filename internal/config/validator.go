package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/rainbow/internal/theme"
	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	languageIDPattern = regexp.MustCompile(`^[a-z][a-z0-9+#._-]*$`)
	extensionPattern  = regexp.MustCompile(`^!?(?:\*\.|\.)?[A-Za-z0-9_-]+$`)
	themeNamePattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("language_id", func(fl validator.FieldLevel) bool {
			return languageIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("extension", func(fl validator.FieldLevel) bool {
			return extensionPattern.MatchString(strings.TrimSpace(fl.Field().String()))
		})

		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			return themeNamePattern.MatchString(fl.Field().String())
		})

		theme.RegisterValidations(v)

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and theme validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return rainbowerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.Watch.Debounce < 0 {
		return rainbowerrors.NewValidationError("watch.debounce", fmt.Sprintf("must not be negative, got %s", cfg.Watch.Debounce), nil)
	}

	names := make([]string, 0, len(cfg.Themes))
	for name := range cfg.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := theme.Validate(cfg.Themes[name]); err != nil {
			if ve, ok := err.(*rainbowerrors.ValidationError); ok {
				return rainbowerrors.NewValidationError("themes."+name+"."+ve.Field, ve.Message, ve.Err)
			}
			return err
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return rainbowerrors.NewValidationError(field, msg, err)
	}

	return rainbowerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.Scan.MaxFileSize" into "scan.maxFileSize".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToLower(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, ".")
}
