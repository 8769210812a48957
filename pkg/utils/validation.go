package utils

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	return v
}

// ValidateStruct returns one message per invalid field, keyed by json name,
// or nil when data is valid.
func ValidateStruct(data any) map[string]string {
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(data); !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Must be a valid UUID",
	"nospace":  "Cannot contain spaces",
	"url":      "Must be a valid URL",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}

	numeric := isNumeric(fe.Kind())
	switch fe.Tag() {
	case "min", "gte":
		if numeric {
			return "Must be at least " + fe.Param()
		}
		return "Minimum length is " + fe.Param()
	case "max", "lte":
		if numeric {
			return "Must be at most " + fe.Param()
		}
		return "Maximum length is " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "Invalid value"
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// FormatValidationErrors renders fields as "field: reason" pairs in field order.
func FormatValidationErrors(fields map[string]string) string {
	msgs := make([]string, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		msgs = append(msgs, name+": "+fields[name])
	}
	return strings.Join(msgs, "; ")
}
