package httpx

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate runs struct validation and converts failures into the field-error
// shape used by ValidationProblem. Returns nil when the payload is valid.
func Validate(v *validator.Validate, payload any) []FieldError {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Reason: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		reason := fieldErr.Tag()
		if fieldErr.Param() != "" {
			reason += "=" + fieldErr.Param()
		}
		out = append(out, FieldError{
			Field:  strings.ToLower(fieldErr.Field()),
			Reason: reason,
		})
	}
	return out
}
