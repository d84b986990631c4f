package dtos

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
)

// ValidationErrorDetail describes one failed field of a payload.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewValidator returns a validator that reports JSON field names and knows
// the request enums (issue_type, priority, request_status).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("issue_type", func(fl validator.FieldLevel) bool {
		return models.IssueType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.Priority(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("request_status", func(fl validator.FieldLevel) bool {
		return models.RequestStatus(fl.Field().String()).IsValid()
	})
	return v
}

// FormatValidationErrors flattens validator output into response details.
func FormatValidationErrors(errs validator.ValidationErrors) []ValidationErrorDetail {
	out := make([]ValidationErrorDetail, 0, len(errs))
	for _, fe := range errs {
		out = append(out, ValidationErrorDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Code:    "validation_" + fe.Tag(),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "issue_type", "priority", "request_status":
		return fe.Field() + " has an unknown value"
	default:
		return fe.Field() + " is invalid"
	}
}
