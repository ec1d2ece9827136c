package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	tokenNamePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)*$`)
	scaleKeyPattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("token_name", func(fl validator.FieldLevel) bool {
			return tokenNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("scale_key", func(fl validator.FieldLevel) bool {
			return scaleKeyPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// convertValidationError turns every field failure into a ValidationError
// and aggregates them.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		var combined error
		for _, ve := range ves {
			field := yamlishFieldName(ve)
			msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
			combined = multierr.Append(combined, apperrors.NewValidationError(field, msg, ve))
		}
		return combined
	}

	return apperrors.NewValidationError("document", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
