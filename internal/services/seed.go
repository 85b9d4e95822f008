package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// SeedAccount is an account created on startup when it does not exist yet.
type SeedAccount struct {
	Username string
	Password string
	Role     entities.Role
}

// DefaultSeedAccounts returns the administrator and regular accounts.
func DefaultSeedAccounts(adminPassword, userPassword string) []SeedAccount {
	return []SeedAccount{
		{Username: "admin", Password: adminPassword, Role: entities.RoleAdmin},
		{Username: "user", Password: userPassword, Role: entities.RoleUser},
	}
}

// SeedUsers creates every account whose username is not registered yet.
// Existing accounts are left untouched, so running it again is harmless.
func SeedUsers(svc *UserService, accounts []SeedAccount, log *zap.Logger) error {
	for _, account := range accounts {
		exists, err := svc.ExistsByUsername(account.Username)
		if err != nil {
			return fmt.Errorf("failed to check seed user %s: %w", account.Username, err)
		}
		if exists {
			continue
		}

		_, err = svc.Save(User{
			Username: account.Username,
			Password: account.Password,
			Role:     account.Role,
		})
		if err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", account.Username, err)
		}
		log.Info("Seed user created",
			zap.String("username", account.Username),
			zap.String("role", string(account.Role)),
		)
	}
	return nil
}
