// Default account seeding for fresh deployments.
package services

import (
	"context"
	"fmt"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/security"
)

// seedAccount describes one default account created on an empty deployment.
type seedAccount struct {
	username string
	name     string
	password string
	email    string
	role     models.UserRole
}

var defaultAccounts = []seedAccount{
	{"admin", "Administrator", "admin123", "admin@facilitycheck.local", models.RoleAdmin},
	{"user", "Inspector", "user123", "user@facilitycheck.local", models.RoleUser},
	{"viewer", "Viewer", "viewer123", "viewer@facilitycheck.local", models.RoleViewer},
}

// SeedDefaultUsers creates the default admin/user/viewer accounts when they
// do not exist yet. Passwords are stored through the active verification
// strategy, so a bcrypt deployment never ends up with plaintext seeds.
//
// Existing accounts are left untouched; the check is per username, so a
// partially seeded database is completed rather than skipped.
func SeedDefaultUsers(ctx context.Context, verifier security.PasswordVerifier, logger *security.Logger) error {
	userRepo := repository.NewUserRepository()

	for _, acc := range defaultAccounts {
		exists, err := userRepo.ExistsByUsername(ctx, acc.username)
		if err != nil {
			return fmt.Errorf("seed lookup for %s: %w", acc.username, err)
		}
		if exists {
			continue
		}

		stored, err := verifier.Hash(acc.password)
		if err != nil {
			return fmt.Errorf("seed password for %s: %w", acc.username, err)
		}

		user := &models.User{
			Username:     acc.username,
			Name:         acc.name,
			PasswordHash: stored,
			Email:        acc.email,
			Role:         acc.role,
			Enabled:      true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed create for %s: %w", acc.username, err)
		}

		logger.Info(fmt.Sprintf("Seeded default account %s (%s)", acc.username, acc.role))
	}

	return nil
}
