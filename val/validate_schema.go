package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
)

// ValidateSchema validates a schema using the go-playground/validator tags
// on its fields. On failure it returns a single errx validation error whose
// Fields map names every failing field with a human-readable description.
func ValidateSchema(schema any) error {
	err := getValidator().Struct(schema)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(errx.M)

		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = getFieldErrDescription(fieldErr)
		}

		return errx.New(
			"Validation failed. See fields for details.",
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	return errx.New(
		fmt.Sprintf("Unknown validation error: %s", err.Error()),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}

// getFieldErrDescription maps a validator tag failure to a description.
// Only the tags used by the storage configuration structs get dedicated
// wording; anything else falls back to naming the failed tag.
func getFieldErrDescription(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	param := fieldErr.Param()

	switch tag {
	case "required":
		return "This field is required"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "hostname", "hostname_port":
		return "Must be a valid host name"
	case "ip":
		return "Must be a valid IP address"
	}

	return fmt.Sprintf("Failed validation: %s", tag)
}

// FailedFields extracts the per-field failure descriptions from an error
// produced by ValidateSchema. It returns nil for any other error.
func FailedFields(err error) map[string]string {
	if err == nil {
		return nil
	}

	e := errx.AsErrorX(err)
	if e.Code() != CodeValidationFailed {
		return nil
	}
	return e.Fields()
}
