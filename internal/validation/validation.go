// Package validation declares one declarative schema per request type and a
// single generic validator that evaluates them into a field→message mapping.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so the error mapping matches the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Schema is a request type with declarative validation rules. Sanitize runs
// before the rules are evaluated; Messages supplies the per-field failure
// messages.
type Schema interface {
	Sanitize()
	Messages() map[string]string
}

// Check sanitizes the request and evaluates its schema. It returns nil when
// the request is valid, otherwise the field→message mapping for the response.
func Check(s Schema) map[string]string {
	s.Sanitize()

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return map[string]string{"request": "Invalid request"}
	}

	fields := make(map[string]string)
	messages := s.Messages()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			name := fe.Field()
			if msg, ok := messages[name]; ok {
				fields[name] = msg
			} else {
				fields[name] = "Invalid value"
			}
		}
	}
	return fields
}
