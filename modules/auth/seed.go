package auth

import (
	"fmt"
	"log"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
)

// seedPasswordHash is the bcrypt hash (cost 12) of the default password
// "ComandesJSDR". It is a fixed value so repeated startups do not rewrite
// the seed rows.
const seedPasswordHash = "$2a$12$wKQgs3QYMJdHm791BDWZ7eJCndZsZAvQYcbBQ9UCEs.sFP6Hp1LOW"

// seedUsers inserts the default administrator and standard user accounts
// when the user table is empty.
func seedUsers(repo *UserRepository) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	defaults := []*domain.User{
		{
			Username:     "administrador",
			PasswordHash: seedPasswordHash,
			FullName:     "Administrador del Sistema",
			Email:        "admin@comandesjdsr.com",
			Role:         domain.RoleAdministrator,
			IsEnabled:    true,
			CreatedAt:    createdAt,
		},
		{
			Username:     "usuari",
			PasswordHash: seedPasswordHash,
			FullName:     "Usuari Estàndard",
			Email:        "usuari@comandesjdsr.com",
			Role:         domain.RoleUser,
			IsEnabled:    true,
			CreatedAt:    createdAt,
		},
	}

	for _, user := range defaults {
		if err := repo.Create(user); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", user.Username, err)
		}
	}

	log.Printf("[auth] Seeded %d default users", len(defaults))
	return nil
}
