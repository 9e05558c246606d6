package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"phonicsquest/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidateDifficulty checks that a difficulty is within 1..10
func ValidateDifficulty(difficulty int) error {
	if difficulty < models.MinDifficulty || difficulty > models.MaxDifficulty {
		return ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("must be between %d and %d", models.MinDifficulty, models.MaxDifficulty),
		}
	}
	return nil
}

// ValidateExerciseType checks that an exercise type is known
func ValidateExerciseType(t models.ExerciseType) error {
	if t == "" {
		return ValidationError{Field: "exerciseType", Message: "exercise type is required"}
	}
	if !t.Valid() {
		return ValidationError{Field: "exerciseType", Message: fmt.Sprintf("unknown exercise type %q", t)}
	}
	return nil
}

// ValidateTargetRounds checks an explicit round count. Zero means "use the default"
// and is resolved by the caller before this is called.
func ValidateTargetRounds(rounds int) error {
	if rounds < 1 {
		return ValidationError{Field: "targetRounds", Message: "must be at least 1"}
	}
	return nil
}

// ValidateRequired checks that a string field is present
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateNonNegative checks that a counter or duration is not negative
func ValidateNonNegative(field string, value int) error {
	if value < 0 {
		return ValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

// ValidateEmail checks the shape of a report recipient address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}
