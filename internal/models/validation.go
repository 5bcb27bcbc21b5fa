package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on a form
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationMessage renders a validation error as one banner sentence
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return strings.Join(parts, " ")
}

func describe(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required", "gt":
		return fmt.Sprintf("%s is required.", field)
	case "required_without":
		return fmt.Sprintf("Please enter %s or %s.", strings.ToLower(field), strings.ToLower(humanize(fe.Param())))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s.", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s has an invalid format.", field)
	case "numeric":
		return fmt.Sprintf("%s must be a number.", field)
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

var fieldLabels = map[string]string{
	"ProfessionalID":   "Professional ID",
	"DoctorID":         "Doctor",
	"SpecializationID": "Specialization",
	"RequestID":        "Service request",
}

// humanize turns FullName into "Full name"
func humanize(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}

	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
