// Package services_test provides unit tests for the business logic layer.
// Tests use pgxmock v4 for database mocking and follow table-driven testing
// patterns. Auth service tests cover login validation and registration
// uniqueness rules.
package services_test

import (
	"context"
	"testing"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRows builds a single-row result set matching the user SELECT column
// list. Tests use the plaintext verifier so stored passwords are literal.
func userRows(id int64, username, password string, role models.UserRole, enabled bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "name", "password_hash", "email", "role", "enabled"}).
		AddRow(id, username, "Test User", password, username+"@example.com", role, enabled)
}

// TestAuthService_Authenticate verifies the login flow.
//
// Test Cases:
//   - Successful login: Matching credentials on an enabled account
//   - Unknown username: Reads as invalid credentials
//   - Wrong password: Reads as invalid credentials, not distinguishable
//     from an unknown username
//   - Disabled account: Correct credentials on a disabled account is a
//     distinct error, reported only after identity is proven
//
// Security Notes:
//   - Unknown user and wrong password must return the same error so the
//     login form cannot be used to enumerate accounts
func TestAuthService_Authenticate(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		mockSetup     func(pgxmock.PgxPoolIface)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "admin123",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, name, password_hash, email, role, enabled FROM users WHERE LOWER").
					WithArgs("admin").
					WillReturnRows(userRows(1, "admin", "admin123", models.RoleAdmin, true))
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "whatever",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, name, password_hash, email, role, enabled FROM users WHERE LOWER").
					WithArgs("ghost").
					WillReturnError(pgx.ErrNoRows)
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "nope",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, name, password_hash, email, role, enabled FROM users WHERE LOWER").
					WithArgs("admin").
					WillReturnRows(userRows(1, "admin", "admin123", models.RoleAdmin, true))
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name:     "disabled account with correct password",
			username: "viewer",
			password: "viewer123",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, name, password_hash, email, role, enabled FROM users WHERE LOWER").
					WithArgs("viewer").
					WillReturnRows(userRows(3, "viewer", "viewer123", models.RoleViewer, false))
			},
			expectedError: services.ErrAccountDisabled,
		},
		{
			name:     "disabled account with wrong password",
			username: "viewer",
			password: "nope",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, name, password_hash, email, role, enabled FROM users WHERE LOWER").
					WithArgs("viewer").
					WillReturnRows(userRows(3, "viewer", "viewer123", models.RoleViewer, false))
			},
			// Credentials are checked first: the disabled state stays hidden
			// until the caller proves they own the account.
			expectedError: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			oldDB := database.DB
			database.DB = mock
			defer func() { database.DB = oldDB }()

			tt.mockSetup(mock)
			svc := services.NewAuthService(&security.PlaintextVerifier{})

			user, err := svc.Authenticate(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user, "User should be nil on error")
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username, "Username should match")
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestAuthService_Register verifies self-registration.
//
// Test Cases:
//   - Successful registration: New account gets role USER and enabled=true
//   - Username taken: Rejected before the email check runs
//   - Email taken: Rejected after the username check passes
//
// Database Query:
//   - Username uniqueness is checked before email uniqueness, so when both
//     collide the username error wins and no email query is issued
func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(pgxmock.PgxPoolIface)
		expectedError error
	}{
		{
			name: "successful registration",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs("newuser").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs("newuser@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery("INSERT INTO users").
					WithArgs("newuser", "New User", "secret1", "newuser@example.com", models.RoleUser, true).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			expectedError: nil,
		},
		{
			name: "username already exists",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				// Only the username check runs; the collision short-circuits
				// the rest of the flow.
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs("newuser").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectedError: services.ErrUsernameTaken,
		},
		{
			name: "email already exists",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs("newuser").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs("newuser@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectedError: services.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			oldDB := database.DB
			database.DB = mock
			defer func() { database.DB = oldDB }()

			tt.mockSetup(mock)
			svc := services.NewAuthService(&security.PlaintextVerifier{})

			user, err := svc.Register(context.Background(), "newuser", "New User", "secret1", "newuser@example.com")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, int64(7), user.ID, "ID should come from the database")
				assert.Equal(t, models.RoleUser, user.Role, "Self-registered accounts get role USER")
				assert.True(t, user.Enabled, "New accounts start enabled")
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
