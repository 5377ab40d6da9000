package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are joined into a
// single client-safe message keyed by JSON field names.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for n, fe := range ve {
		msgs[n] = fieldError(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// tagMessages renders a failed tag; %[1]s is the field and %[2]s the tag parameter.
var tagMessages = map[string]string{
	"required": "%[1]s is required",
	"email":    "%[1]s must be a valid email",
	"uuid":     "%[1]s must be a valid uuid",
	"gt":       "%[1]s must be greater than %[2]s",
	"min":      "%[1]s must be at least %[2]s",
	"max":      "%[1]s must be at most %[2]s",
	"lte":      "%[1]s must be at most %[2]s",
	"oneof":    "%[1]s must be one of: %[2]s",
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	if format, ok := tagMessages[fe.Tag()]; ok {
		if strings.Contains(format, "%[2]s") {
			return fmt.Sprintf(format, field, fe.Param())
		}
		return fmt.Sprintf(format, field)
	}
	return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
}
