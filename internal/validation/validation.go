// Package validation normalizes and checks request input. It performs no
// I/O and holds no state.
package validation

import (
	"regexp"
	"strings"

	"github.com/startuplab/landing-api/internal/models"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases raw and checks it against the
// local@domain.tld shape. Returns models.ErrEmailRequired for empty input
// and models.ErrEmailFormat for anything that does not match.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", models.ErrEmailRequired
	}
	if !emailRx.MatchString(email) {
		return "", models.ErrEmailFormat
	}
	return email, nil
}

// ContactInput is a raw contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Normalize trims all three fields and normalizes the email. Returns
// models.ErrMissingFields when any field is empty after trimming.
func (in ContactInput) Normalize() (ContactInput, error) {
	out := ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Message: strings.TrimSpace(in.Message),
	}
	if out.Name == "" || strings.TrimSpace(in.Email) == "" || out.Message == "" {
		return ContactInput{}, models.ErrMissingFields
	}
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return ContactInput{}, err
	}
	out.Email = email
	return out, nil
}
