// Package repository implements the database access layer for facilitycheck.
// This file handles user account lookup, uniqueness checks, and user CRUD
// operations.
package repository

import (
	"context"
	"errors"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by all repositories when the requested row does not
// exist. Handlers map it to a 404 response.
var ErrNotFound = errors.New("not found")

// UserRepository handles user-related database operations.
// Manages user accounts, authentication lookups, and user lifecycle.
type UserRepository struct{}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = `id, username, name, password_hash, email, role, enabled`

// FindByUsername retrieves a user by username, matched case-insensitively.
// Used during login to validate credentials.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - username: Login name (compared with LOWER on both sides)
//
// Returns:
//   - *models.User: Full record including password hash
//   - error: ErrNotFound if no such user, database error otherwise
//
// Database: Uses parameterized query to prevent SQL injection
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	var user models.User
	err := database.DB.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.Email, &user.Role, &user.Enabled,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByID retrieves a user by primary key.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - id: User's unique identifier
//
// Returns:
//   - *models.User: Full record including password hash
//   - error: ErrNotFound if the ID doesn't exist, database error otherwise
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.Email, &user.Role, &user.Enabled,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ListAll retrieves all users ordered by ID.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - []models.User: All users; callers must project to UserView before
//     responding so the hash never leaves the process
//   - error: Database error if query fails, nil on success
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.Email, &user.Role, &user.Enabled)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// ExistsByUsername reports whether a username is already taken.
// Matched case-insensitively, consistent with FindByUsername.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ExistsByEmail reports whether an email address is already registered.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ExistsByID reports whether a user row exists.
func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new user. Password must already be in its storable form
// (hashed in secure mode).
//
// Database: username and email carry UNIQUE constraints, so a lost
// check-then-create race is rejected at commit time.
// Side Effects: Populates user.ID with the database-generated value.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, name, password_hash, email, role, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return database.DB.QueryRow(ctx, query,
		user.Username, user.Name, user.PasswordHash, user.Email, user.Role, user.Enabled,
	).Scan(&user.ID)
}

// Update overwrites the profile fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET username = $1, name = $2, email = $3 WHERE id = $4`
	_, err := database.DB.Exec(ctx, query, user.Username, user.Name, user.Email, user.ID)
	return err
}

// UpdateRole changes a user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.UserRole) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`
	_, err := database.DB.Exec(ctx, query, role, id)
	return err
}

// UpdateEnabled toggles a user's enabled flag.
func (r *UserRepository) UpdateEnabled(ctx context.Context, id int64, enabled bool) error {
	query := `UPDATE users SET enabled = $1 WHERE id = $2`
	_, err := database.DB.Exec(ctx, query, enabled, id)
	return err
}

// Delete removes a user permanently.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, id)
	return err
}
