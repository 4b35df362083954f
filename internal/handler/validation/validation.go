// Package validation registers the request rules gin's binding engine needs
// beyond the validator defaults.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"court-reservation/internal/domain/slot"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const TagHourAligned = "hour_aligned"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Register installs the custom rules on gin's default validator. It must run
// before the first request is bound.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(wireName)
	if err := v.RegisterValidation(TagHourAligned, validateHourAligned); err != nil {
		return fmt.Errorf("register %s: %w", TagHourAligned, err)
	}
	return nil
}

func validateHourAligned(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return slot.IsAligned(t)
}

// wireName reports fields by their json or query name.
func wireName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Details flattens binding failures for the error response. Errors that are
// not validation failures (malformed JSON, bad time format) yield nil.
func Details(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must match " + fe.Param()
	case TagHourAligned:
		return "must be on the hour"
	default:
		return "failed " + fe.Tag()
	}
}
