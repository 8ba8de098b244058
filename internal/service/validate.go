package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/healthtrack/healthtrack-go/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages overrides the generic message for a field.tag pair.
var fieldMessages = map[string]string{
	"username.required":        "please add a username",
	"email.required":           "please add an email",
	"email.email":              "please add a valid email",
	"password.required":        "please add a password",
	"password.min":             "password must be at least 6 characters",
	"title.required":           "please add an appointment title",
	"date.required":            "please add a date",
	"activityType.required":    "please add an activity type",
	"durationMinutes.required": "please add the duration in minutes",
	"durationMinutes.gte":      "duration must be at least 1 minute",
	"caloriesBurned.gte":       "calories burned cannot be negative",
	"mood.required":            "please record your mood",
	"mood.oneof":               "mood must be one of: " + strings.Join(model.Moods, ", "),
	"stressLevel.gte":          "stress level must be between 1 and 10",
	"stressLevel.lte":          "stress level must be between 1 and 10",
	"sleepHours.gte":           "sleep hours cannot be negative",
	"status.oneof":             "status must be one of: Scheduled, Completed, Cancelled",
}

// validateStruct runs the validate tags on v and converts failures into a ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Messages: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDate accepts RFC 3339 timestamps, local date-times without a zone (read as UTC)
// and plain dates.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, validationFailed(field + " must be a valid date")
}
