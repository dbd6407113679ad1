package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidateStruct runs the `validate` tags of a request DTO.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens a validator error into field -> message.
func GetValidationErrors(err error) map[string]string {
	result := map[string]string{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		result["_"] = err.Error()
		return result
	}

	for _, fe := range validationErrors {
		result[fe.Field()] = validationMessage(fe)
	}
	return result
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "eq=|datetime=" + DateLayout:
		return fmt.Sprintf("must be empty or a date in %s format", DateLayout)
	case "eq=|uuid":
		return "must be empty or a valid UUID"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
