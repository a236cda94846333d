package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Validator groups the input checks shared by the services.
type Validator struct{}

// ValidateEmail checks the address shape only; deliverability is not verified.
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email %q is not valid", email)
	}
	return nil
}

// ValidateName checks a required free-text field against length bounds.
func (v *Validator) ValidateName(name, fieldName string, min, max int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if n := len([]rune(name)); n < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	} else if n > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateSlug accepts lowercase words joined by single dashes.
func (v *Validator) ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug %q must be lowercase letters, digits and dashes", slug)
	}
	return nil
}

// FormatValidationErrors folds errs into a single ErrInvalidInput, or nil.
func (v *Validator) FormatValidationErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
