package exceptions

import (
	"clinic-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FormatValidationErrors(err error) []ValidationIssue {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	issues := make([]ValidationIssue, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		issues = append(issues, ValidationIssue{
			Field:   lowerFirst(fieldErr.Field()),
			Message: lowerFirst(fieldErr.Field()) + " " + messageForTag(fieldErr.Tag(), fieldErr.Param()),
		})
	}
	return issues
}

func FormatFirstValidationError(err error) string {
	issues := FormatValidationErrors(err)
	if len(issues) == 0 {
		return constvars.ErrClientValidationFailed
	}
	return issues[0].Message
}

func messageForTag(tag, param string) string {
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		customMessage = strings.Replace(customMessage, "%s", param, 1)
	}
	return customMessage
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
