// Package security provides centralized security configuration and utilities:
// request limits, input validation, password verification strategies, and the
// structured JSON logger.
package security

import (
	"time"
)

// SecurityConfig holds all security-related limit values.
type SecurityConfig struct {
	// Password storage
	BcryptCost int // Cost factor for bcrypt hashing

	// Input validation limits
	MinPasswordLength int // Minimum password length for new accounts
	MaxCommentLength  int // Maximum characters in a result comment
	MaxPhotoURLLength int // Maximum characters in a stored photo URL
	MaxNameLength     int // Maximum characters in names/titles
	MaxUploadSize     int // Maximum photo upload size in bytes
	QueryTimeout      time.Duration
}

// DefaultSecurityConfig returns the limit set used in production.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		BcryptCost: 12,

		MinPasswordLength: 6,
		MaxCommentLength:  1000,
		MaxPhotoURLLength: 500,
		MaxNameLength:     200,
		MaxUploadSize:     5 * 1024 * 1024, // 5MB
		QueryTimeout:      30 * time.Second,
	}
}
