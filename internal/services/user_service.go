// User management rules, most importantly the self-protection guard: an actor
// may never change the role of, disable, or delete their own account.
package services

import (
	"context"
	"errors"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/security"
)

// Self-protection and validation errors. Handlers surface the messages
// verbatim as 400 responses.
var (
	ErrOwnRole    = errors.New("You cannot change your own role")
	ErrOwnDisable = errors.New("You cannot disable your own account")
	ErrOwnDelete  = errors.New("You cannot delete your own account")
	ErrBadRole    = errors.New("Invalid role")
)

// UserService implements admin-facing user mutations.
//
// The acting user's identity arrives as an optional pointer rather than
// ambient request state, which keeps the self-protection rule testable
// without an HTTP harness. A nil actor skips the guard entirely: the system
// trusts caller-supplied identity and an absent header means no identity was
// claimed. That is an explicit trust simplification, not a security boundary.
type UserService struct {
	userRepo *repository.UserRepository
	verifier security.PasswordVerifier
}

// NewUserService creates a UserService using the given verification strategy
// (needed when admins create accounts with passwords).
func NewUserService(verifier security.PasswordVerifier) *UserService {
	return &UserService{
		userRepo: repository.NewUserRepository(),
		verifier: verifier,
	}
}

// selfBlocked reports whether the guard applies: an actor was supplied and it
// targets its own account. The check runs before any lookup of the target, so
// a blocked call causes no reads or writes.
func selfBlocked(actorID *int64, targetID int64) bool {
	return actorID != nil && *actorID == targetID
}

// ChangeRole sets the role of the target user.
//
// Guard order: self-block, then role validity, then target existence.
// The self check keys on whose account is affected, not on what value is
// being set, so it runs even when the submitted role is garbage.
//
// Returns ErrOwnRole, ErrBadRole, repository.ErrNotFound, or a database error.
func (s *UserService) ChangeRole(ctx context.Context, targetID int64, role string, actorID *int64) (*models.User, error) {
	if selfBlocked(actorID, targetID) {
		return nil, ErrOwnRole
	}

	newRole := models.UserRole(role)
	if !newRole.Valid() {
		return nil, ErrBadRole
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, newRole); err != nil {
		return nil, err
	}

	user.Role = newRole
	return user, nil
}

// SetEnabled enables or disables the target account.
//
// Returns ErrOwnDisable, repository.ErrNotFound, or a database error.
func (s *UserService) SetEnabled(ctx context.Context, targetID int64, enabled bool, actorID *int64) (*models.User, error) {
	if selfBlocked(actorID, targetID) {
		return nil, ErrOwnDisable
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateEnabled(ctx, targetID, enabled); err != nil {
		return nil, err
	}

	user.Enabled = enabled
	return user, nil
}

// Delete removes the target account permanently.
//
// Returns ErrOwnDelete, repository.ErrNotFound, or a database error.
func (s *UserService) Delete(ctx context.Context, targetID int64, actorID *int64) error {
	if selfBlocked(actorID, targetID) {
		return ErrOwnDelete
	}

	exists, err := s.userRepo.ExistsByID(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}

	return s.userRepo.Delete(ctx, targetID)
}

// Create adds an account with an explicit role (defaulting to USER), used by
// the admin user-management endpoint. Same uniqueness semantics as Register.
//
// Returns ErrUsernameTaken, ErrEmailTaken, ErrBadRole, or a database error.
func (s *UserService) Create(ctx context.Context, username, name, password, email, role string) (*models.User, error) {
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

	newRole := models.RoleUser
	if role != "" {
		newRole = models.UserRole(role)
		if !newRole.Valid() {
			return nil, ErrBadRole
		}
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
		Role:         newRole,
		Enabled:      true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile partially updates username, name, and email. Username and
// email changes re-run the uniqueness checks; unchanged values are left alone.
// Empty strings mean "not supplied".
//
// Returns ErrUsernameTaken, ErrEmailTaken, repository.ErrNotFound, or a
// database error.
func (s *UserService) UpdateProfile(ctx context.Context, targetID int64, username, name, email string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = username
	}

	if email != "" && email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}

	if name != "" {
		user.Name = name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
