package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Check validates every field of v in one pass and returns one message per
// violation, in declaration order. An empty slice means the value is valid.
//
// Request structs use pointer fields so that a missing field ("required")
// and a present-but-empty one ("min") produce distinct messages.
func Check(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

// JoinMessages flattens the collected violations into the single aggregated
// error string the API returns.
func JoinMessages(msgs []string) string {
	return strings.Join(msgs, ", ")
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if s, ok := fe.Value().(string); ok && s == "" {
			return fmt.Sprintf("%s cannot be empty", field)
		}
		unit := "characters"
		if fe.Param() == "1" {
			unit = "character"
		}
		return fmt.Sprintf("%s must be at least %s %s long", field, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		choices := strings.Fields(fe.Param())
		quoted := make([]string, len(choices))
		for i, c := range choices {
			quoted[i] = fmt.Sprintf("%q", c)
		}
		return fmt.Sprintf("%s must be either %s", field, strings.Join(quoted, " or "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
