package validation

import "github.com/go-playground/validator/v10"

// Error is one field-level validation failure.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationError flattens a validator error into per-field
// entries for the 422 response body.
func FormatValidationError(err error) []Error {
	var errs []Error
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errs = append(errs, Error{
				Field:   e.Field(),
				Message: e.Error(),
			})
		}
	}
	if len(errs) == 0 && err != nil {
		// type mismatches and malformed bodies don't produce
		// validator.ValidationErrors
		errs = append(errs, Error{Field: "body", Message: err.Error()})
	}

	return errs
}
