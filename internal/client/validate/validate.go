// Package validate performs client-side form validation before a request is
// sent. Failures come back in the same field-error shape the backend uses,
// so callers render local and remote validation errors identically.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/go-playground/validator/v10"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,20}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// mustRegister adds a custom tag and panics if the validator refuses it.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %q: %v", tag, err))
	}
}

// fieldName reports the JSON name of a field, falling back to the
// lower-camel Go name for fields that are not JSON encoded (multipart forms).
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name != "" && name != "-" {
		return name
	}
	return strings.ToLower(f.Name[:1]) + f.Name[1:]
}

// Struct validates v. It returns nil or a *gateway.Error of kind Validation.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &gateway.Error{Kind: gateway.KindUnexpected, Message: err.Error()}
	}

	fields := make([]gateway.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, gateway.FieldError{Field: fe.Field(), Msg: message(fe)})
	}
	return &gateway.Error{Kind: gateway.KindValidation, Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return fmt.Sprintf("is required when %s is empty", lowerFirst(fe.Param()))
	case "email":
		return "must be a valid email address"
	case "alphanum":
		return "must contain only letters and digits"
	case "phone":
		return "must be a valid phone number"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "eqfield":
		return fmt.Sprintf("must match %s", lowerFirst(fe.Param()))
	case "nefield":
		return fmt.Sprintf("must differ from %s", lowerFirst(fe.Param()))
	case "gtefield":
		return fmt.Sprintf("must not be less than %s", lowerFirst(fe.Param()))
	case "excluded_with":
		return fmt.Sprintf("cannot be combined with %s", lowerFirst(fe.Param()))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
