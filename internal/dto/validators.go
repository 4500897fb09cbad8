package dto

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom binding tags
const (
	tagSemesterTerm = "semester_term"
	tagCourseCode   = "course_code"
)

var (
	terms = map[string]string{
		"fall":   "Fall",
		"spring": "Spring",
		"summer": "Summer",
	}

	// "CS 18000", "ENGL 10600"
	courseCodePattern = regexp.MustCompile(`^[A-Z]{2,5} [0-9]{5}$`)
)

// RegisterValidators installs the custom tags on the given validator instance
// (normally gin's binding engine).
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(tagSemesterTerm, func(fl validator.FieldLevel) bool {
		_, ok := NormalizeTerm(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation(tagCourseCode, func(fl validator.FieldLevel) bool {
		return courseCodePattern.MatchString(fl.Field().String())
	})
}

// NormalizeTerm maps "fall"/"FALL"/" Fall " to "Fall". ok is false for unknown terms.
func NormalizeTerm(s string) (string, bool) {
	t, ok := terms[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}
