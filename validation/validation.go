// Package validation holds the declarative field rules that run before any
// quote request or profile data reaches the database. All rules for a payload
// are evaluated together so a caller can show every problem at once.
package validation

import (
	"regexp"
	"strings"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/utils"
)

const (
	// MinNameLength and MaxNameLength bound the requester name after trimming.
	MinNameLength = 2
	MaxNameLength = 100

	// MaxRequirementsLength caps the free-text requirements field.
	MaxRequirementsLength = 2000

	// MaxNotesLength caps internal moderation notes.
	MaxNotesLength = 1000

	// MaxPhoneDigits bounds the digit count of a phone number.
	MaxPhoneDigits = 16
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes a single violated rule on a named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IsValidEmail reports whether the input looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidPhone reports whether the input is a plausible phone number: digits
// with an optional leading plus sign, at most MaxPhoneDigits digits total.
// Common separators (spaces, dashes, dots, parentheses) are tolerated.
// This predicate is shared between quote intake and profile updates so both
// paths accept the same numbers.
func IsValidPhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	for _, r := range trimmed {
		if keepPhoneRunes(r) == -1 {
			return false
		}
	}
	digits := strings.TrimPrefix(utils.SanitizePhone(trimmed), "+")
	if len(digits) == 0 || len(digits) > MaxPhoneDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func keepPhoneRunes(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r
	case r == '+' || r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		return r
	}
	return -1
}

// QuoteRequestInput carries the raw, unsanitized intake payload plus the
// serviceId path parameter.
type QuoteRequestInput struct {
	ServiceID    string
	Name         string
	Email        string
	Phone        *string
	Requirements *string
	Budget       *float64
}

// ValidateQuoteRequest runs every intake rule and returns the full list of
// violations. An empty slice means the payload is acceptable. Rules never
// short-circuit: a payload with a bad name and a bad email reports both.
func ValidateQuoteRequest(in QuoteRequestInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.ServiceID) == "" {
		errs = append(errs, FieldError{Field: "serviceId", Message: "Service ID is required"})
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	} else if len(name) < MinNameLength || len(name) > MaxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "Name must be between 2 and 100 characters"})
	}

	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	} else if !IsValidEmail(in.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Email address is not valid"})
	}

	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" && !IsValidPhone(*in.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number is not valid"})
	}

	if in.Requirements != nil && len(strings.TrimSpace(*in.Requirements)) > MaxRequirementsLength {
		errs = append(errs, FieldError{Field: "requirements", Message: "Requirements must not exceed 2000 characters"})
	}

	if in.Budget != nil && *in.Budget < 0 {
		errs = append(errs, FieldError{Field: "budget", Message: "Budget must be a non-negative number"})
	}

	return errs
}

// ValidateModerationNotes checks the internal notes length cap used by the
// admin moderation path.
func ValidateModerationNotes(notes string) []FieldError {
	if len(strings.TrimSpace(notes)) > MaxNotesLength {
		return []FieldError{{Field: "notes", Message: "Notes must not exceed 1000 characters"}}
	}
	return nil
}
