package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
}

func GetValidator() *validator.Validate {
	return validate
}

// jsonFieldName reports fields by their wire name so clients see correct_answers, not CorrectAnswers.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

type ValidationError struct {
	Field   string `json:"field" example:"correct_answers"`
	Message string `json:"message" example:"correct_answers is required"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var out []ValidationError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}

	for _, fieldError := range validationErrors {
		var message string

		switch fieldError.Tag() {
		case "required":
			message = fieldError.Field() + " is required"
		case "min":
			message = fieldError.Field() + " must be at least " + fieldError.Param()
		case "max":
			message = fieldError.Field() + " must be at most " + fieldError.Param()
		case "ltefield":
			message = fieldError.Field() + " cannot exceed " + fieldError.Param()
		case "gt":
			message = fieldError.Field() + " must be greater than " + fieldError.Param()
		default:
			message = fieldError.Field() + " is invalid"
		}

		out = append(out, ValidationError{
			Field:   fieldError.Field(),
			Message: message,
		})
	}

	return out
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}

// NewValidationErrorResponse builds the same body for a single field.
func NewValidationErrorResponse(field, message string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  []ValidationError{{Field: field, Message: message}},
	}
}
