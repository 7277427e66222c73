// Package services provides the business logic layer for facilitycheck.
// This file implements authentication: login validation with the injected
// password verification strategy, and registration with uniqueness checks.
package services

import (
	"context"
	"errors"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/security"
)

// Sentinel errors for the authentication flows. Handlers map these to HTTP
// statuses and the exact caller-facing messages.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// deliberately indistinguishable so callers cannot probe which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled means the credentials were correct but the account
	// is disabled. Distinct from bad credentials: identity was proven.
	ErrAccountDisabled = errors.New("account is disabled")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// AuthService handles authentication and registration.
//
// Password verification is pluggable: the verifier is chosen once at process
// start (bcrypt in production, plaintext for legacy stores) and injected here,
// so no call site depends on the mode.
type AuthService struct {
	userRepo *repository.UserRepository
	verifier security.PasswordVerifier
}

// NewAuthService creates an AuthService using the given verification strategy.
func NewAuthService(verifier security.PasswordVerifier) *AuthService {
	return &AuthService{
		userRepo: repository.NewUserRepository(),
		verifier: verifier,
	}
}

// Authenticate verifies credentials and returns the user record on success.
//
// Check order matters: credential validity is established before the enabled
// flag is consulted, so a disabled account with wrong credentials still reads
// as invalid credentials rather than revealing the account state.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - username: Login name, matched case-insensitively
//   - password: Plaintext password as submitted
//
// Returns:
//   - *models.User: User record if authentication succeeded
//   - error: ErrInvalidCredentials, ErrAccountDisabled, or a database error
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verifier.Matches(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

// Register creates a new account with role USER and enabled=true.
// The username check runs before the email check, so when both collide the
// username error is the one reported.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - username, name, password, email: Required account fields (presence is
//     validated by the handler)
//
// Returns:
//   - *models.User: Created record with its generated ID
//   - error: ErrUsernameTaken, ErrEmailTaken, or a database error
//
// Side Effects: Stores the password in its verifier-produced form; the
// plaintext never reaches the repository.
func (s *AuthService) Register(ctx context.Context, username, name, password, email string) (*models.User, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Name:         name,
		PasswordHash: stored,
		Email:        email,
		Role:         models.RoleUser,
		Enabled:      true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
