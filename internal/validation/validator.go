// Package validation checks request payloads against their struct tags and
// reports failures as field/message pairs, independent of the HTTP layer.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule, keyed by the JSON name of the field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned when a payload breaks one or more rules.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed at least one rule.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Normalizer is implemented by payloads that clean themselves up
// (trimming whitespace) before the rules run.
type Normalizer interface {
	Normalize()
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("customInfo"), not Go names ("CustomInfo")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct normalizes and validates payload, which must be a pointer to a struct.
// Rule failures come back as Errors; anything else means the payload itself
// could not be inspected.
func (v *Validator) Struct(payload any) error {
	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	return formatValidationErrors(validationErrs)
}

func formatValidationErrors(errs validator.ValidationErrors) Errors {
	details := make(Errors, 0, len(errs))
	for _, err := range errs {
		field := fieldPath(err)
		details = append(details, FieldError{
			Field:   field,
			Message: messageFor(field, err),
		})
	}
	return details
}

// fieldPath drops the top-level struct name from the namespace,
// so "CreatePropertyRequest.images[0]" becomes "images[0]".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func messageFor(field string, err validator.FieldError) string {
	isList := err.Kind() == reflect.Slice || err.Kind() == reflect.Array

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isList {
			return fmt.Sprintf("%s must contain at least %s items", field, err.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		if isList {
			return fmt.Sprintf("%s must contain at most %s items", field, err.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(err.Param(), " ", ", "))
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed the '%s' rule", field, err.Tag())
	}
}

// FromTypeError reports a JSON value of the wrong type (a string for a
// boolean, a string for a list) as a failure of the field it was sent for.
// It returns nil when the mismatch is not tied to a named field.
func FromTypeError(err *json.UnmarshalTypeError) Errors {
	if err == nil || err.Field == "" {
		return nil
	}
	return Errors{{
		Field:   err.Field,
		Message: fmt.Sprintf("%s must be %s", err.Field, describeType(err.Type)),
	}}
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid value"
	}
}

// TrimPtr trims the string behind p, if any.
func TrimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

// TrimAll trims every element of list in place.
func TrimAll(list []string) {
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
}
