package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	ContextKeyCartID contextKey = "cartID"
)

// FormatValidationErrors maps each failed field to a readable message.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed on the %s rule.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

// ValidationFields digs validator field errors out of a wrapped error.
func ValidationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FormatValidationErrors(verrs)
	}
	return nil
}
