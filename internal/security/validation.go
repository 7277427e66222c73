// Package security provides input validation functionality.
package security

import (
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"
)

// ValidationService provides centralized input validation functions.
// All validation methods return descriptive errors that are safe to show to
// API callers verbatim.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a new validation service with security configuration.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{
		config: config,
	}
}

// ValidateEmail validates email address format according to RFC 5322.
// Returns error if email is invalid or too long.
func (v *ValidationService) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > 255 {
		return fmt.Errorf("email must be less than 255 characters")
	}

	// Use Go's standard mail.ParseAddress for RFC 5322 compliance
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("Invalid email format")
	}

	return nil
}

// ValidatePassword validates password meets the minimum length requirement
// for new accounts. The error text is surfaced to callers as-is.
func (v *ValidationService) ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < v.config.MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters", v.config.MinPasswordLength)
	}

	if len(password) > 128 {
		return fmt.Errorf("Password must be less than 128 characters")
	}

	return nil
}

// ValidateDate validates date string format (ISO 8601).
// Expected format: "2025-01-15", "2025-12-31"
func (v *ValidationService) ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is required")
	}

	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format (expected: YYYY-MM-DD)")
	}

	return nil
}

// ValidateComment validates a result comment against the configured bound.
func (v *ValidationService) ValidateComment(comment string) error {
	if utf8.RuneCountInString(comment) > v.config.MaxCommentLength {
		return fmt.Errorf("comment must be %d characters or less", v.config.MaxCommentLength)
	}
	return nil
}

// ValidatePhotoURL validates a stored photo URL against the configured bound.
func (v *ValidationService) ValidatePhotoURL(url string) error {
	if utf8.RuneCountInString(url) > v.config.MaxPhotoURLLength {
		return fmt.Errorf("photo URL must be %d characters or less", v.config.MaxPhotoURLLength)
	}
	return nil
}

