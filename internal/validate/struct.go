package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structs = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s using go-playground/validator tags.
func Struct(s any) error {
	if err := structs.Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return &Error{Errors: ve}
		}
		return err
	}
	return nil
}

// Error wraps validator.ValidationErrors with a readable message.
type Error struct {
	Errors validator.ValidationErrors
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", fe.Field(), msgForTag(fe)))
	}
	return strings.Join(msgs, "; ")
}

// Fields maps field names to messages, for form re-rendering.
func (e *Error) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field()] = msgForTag(fe)
	}
	return out
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "dive":
		return "has an invalid entry"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
