// Package validation wraps the validator/v10 library with the request
// rules used across the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// priceRe matches a decimal price with up to three whole digits and up
// to two decimal places, e.g. "5", "3.3", "999.99".
var priceRe = regexp.MustCompile(`^\d{1,3}(\.\d{1,2})?$`)

// Error is a user-facing validation failure. Its message is safe to
// return in an API response.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Validator wraps go-playground/validator with JSON field names and the
// custom rules request structs rely on.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the API's request structs.
func New() *Validator {
	v := validator.New()

	// Report errors under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			return name[:i]
		}
		return name
	})

	v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return priceRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate checks a request struct and returns a *Error describing
// every failed field, or nil.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Field()+" "+friendlyMessage(e))
	}

	return &Error{msg: strings.Join(msgs, "; ")}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must not exceed " + e.Param()
	case "price":
		return "must be a decimal no greater than 999.99 with at most two decimal places"
	default:
		return "is invalid"
	}
}
