package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestService(t *testing.T) *AuthService {
	t.Helper()

	repo := NewUserRepository(setupTestDB(t))
	hasher := NewPasswordHasher()
	manager := NewJWTManager(testJWTConfig())
	return NewAuthService(repo, hasher, manager)
}

func createTestUser(t *testing.T, svc *AuthService, username, password, role string, enabled bool) *domain.User {
	t.Helper()

	user, err := svc.CreateUser(context.Background(), CreateUserParams{
		Username:  username,
		Password:  password,
		FullName:  "Test " + username,
		Email:     username + "@example.com",
		Role:      role,
		IsEnabled: enabled,
	})
	if err != nil {
		t.Fatalf("CreateUser(%q) error = %v", username, err)
	}
	return user
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createTestUser(t, svc, "administrador", "ComandesJSDR", domain.RoleAdministrator, true)
	createTestUser(t, svc, "disabled", "ComandesJSDR", domain.RoleUser, false)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "administrador", "ComandesJSDR")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.Username != "administrador" {
			t.Errorf("user.Username = %v, want administrador", user.Username)
		}
	})

	// Unknown user, wrong password and disabled account must be
	// indistinguishable to the caller.
	tests := []struct {
		name     string
		username string
		password string
	}{
		{
			name:     "unknown username",
			username: "nosuchuser",
			password: "ComandesJSDR",
		},
		{
			name:     "wrong password",
			username: "administrador",
			password: "wrongpassword",
		},
		{
			name:     "disabled account",
			username: "disabled",
			password: "ComandesJSDR",
		},
		{
			name:     "empty password",
			username: "administrador",
			password: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created := createTestUser(t, svc, "usuari", "ComandesJSDR", domain.RoleUser, true)

	result, err := svc.Login(ctx, "usuari", "ComandesJSDR")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
	if result.User.ID != created.ID {
		t.Errorf("result.User.ID = %v, want %v", result.User.ID, created.ID)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Error("Login() token already expired")
	}

	// The issued token must round-trip through validation.
	claims, err := svc.ValidateToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != created.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, created.ID)
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("claims.Role = %v, want %v", claims.Role, domain.RoleUser)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	enabled := createTestUser(t, svc, "active", "password1", domain.RoleUser, true)
	disabled := createTestUser(t, svc, "inactive", "password1", domain.RoleUser, false)

	t.Run("enabled user", func(t *testing.T) {
		user, err := svc.CurrentUser(ctx, enabled.ID)
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if user.Username != "active" {
			t.Errorf("user.Username = %v, want active", user.Username)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		_, err := svc.CurrentUser(ctx, disabled.ID)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound for disabled user, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.CurrentUser(ctx, 9999)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user := createTestUser(t, svc, "refresher", "password1", domain.RoleUser, true)

	result, err := svc.Refresh(ctx, user.ID)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Refresh() returned empty token")
	}

	claims, err := svc.ValidateToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "refresher" {
		t.Errorf("claims.Username = %v, want refresher", claims.Username)
	}

	t.Run("deleted user", func(t *testing.T) {
		if err := svc.DeleteUser(ctx, user.ID, "someoneelse"); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}
		_, err := svc.Refresh(ctx, user.ID)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound after delete, got %v", err)
		}
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user := createTestUser(t, svc, "changer", "oldpassword", domain.RoleUser, true)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "notthepassword", "newpassword")
		if !errors.Is(err, ErrWrongPassword) {
			t.Fatalf("expected ErrWrongPassword, got %v", err)
		}

		// Stored hash must be untouched after a failed attempt.
		if _, err := svc.Authenticate(ctx, "changer", "oldpassword"); err != nil {
			t.Errorf("old password no longer works after failed change: %v", err)
		}
	})

	t.Run("new password too short", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "oldpassword", "short")
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		err := svc.ChangePassword(ctx, 9999, "oldpassword", "newpassword")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("successful change", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, user.ID, "oldpassword", "newpassword"); err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}

		if _, err := svc.Authenticate(ctx, "changer", "oldpassword"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("old password still works after change, err = %v", err)
		}
		if _, err := svc.Authenticate(ctx, "changer", "newpassword"); err != nil {
			t.Errorf("new password does not work after change: %v", err)
		}
	})
}

func TestAuthService_CreateUser_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	valid := CreateUserParams{
		Username:  "newuser",
		Password:  "password1",
		FullName:  "New User",
		Email:     "newuser@example.com",
		Role:      domain.RoleUser,
		IsEnabled: true,
	}

	tests := []struct {
		name   string
		mutate func(p *CreateUserParams)
		want   error
	}{
		{
			name:   "invalid email",
			mutate: func(p *CreateUserParams) { p.Email = "not-an-email" },
			want:   ErrInvalidEmail,
		},
		{
			name:   "invalid role",
			mutate: func(p *CreateUserParams) { p.Role = "SuperAdmin" },
			want:   ErrInvalidRole,
		},
		{
			name:   "password too short",
			mutate: func(p *CreateUserParams) { p.Password = "abc" },
			want:   ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)
			_, err := svc.CreateUser(ctx, params)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("empty username", func(t *testing.T) {
		params := valid
		params.Username = ""
		_, err := svc.CreateUser(ctx, params)
		if err == nil {
			t.Error("expected error for empty username")
		}
	})

	t.Run("empty full name", func(t *testing.T) {
		params := valid
		params.FullName = ""
		_, err := svc.CreateUser(ctx, params)
		if err == nil {
			t.Error("expected error for empty full name")
		}
	})
}

func TestAuthService_CreateUser_Conflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createTestUser(t, svc, "taken", "password1", domain.RoleUser, true)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			Username:  "taken",
			Password:  "password1",
			FullName:  "Someone Else",
			Email:     "other@example.com",
			Role:      domain.RoleUser,
			IsEnabled: true,
		})
		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			Username:  "someoneelse",
			Password:  "password1",
			FullName:  "Someone Else",
			Email:     "taken@example.com",
			Role:      domain.RoleUser,
			IsEnabled: true,
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestAuthService_UpdateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user := createTestUser(t, svc, "editable", "password1", domain.RoleUser, true)
	other := createTestUser(t, svc, "other", "password1", domain.RoleUser, true)

	t.Run("partial update leaves other fields", func(t *testing.T) {
		fullName := "Renamed User"
		updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{FullName: &fullName})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if updated.FullName != fullName {
			t.Errorf("FullName = %v, want %v", updated.FullName, fullName)
		}
		if updated.Email != "editable@example.com" {
			t.Errorf("Email changed unexpectedly: %v", updated.Email)
		}
		if updated.Role != domain.RoleUser {
			t.Errorf("Role changed unexpectedly: %v", updated.Role)
		}
	})

	t.Run("email conflict", func(t *testing.T) {
		email := other.Email
		_, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{Email: &email})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		email := "editable@example.com"
		if _, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{Email: &email}); err != nil {
			t.Errorf("UpdateUser() error = %v", err)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		role := "Root"
		_, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{Role: &role})
		if !errors.Is(err, ErrInvalidRole) {
			t.Errorf("expected ErrInvalidRole, got %v", err)
		}
	})

	t.Run("disable account", func(t *testing.T) {
		enabled := false
		updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{IsEnabled: &enabled})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if updated.IsEnabled {
			t.Error("IsEnabled still true after disable")
		}

		// A disabled account can no longer log in.
		_, err = svc.Authenticate(ctx, "editable", "password1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for disabled user, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		fullName := "Ghost"
		_, err := svc.UpdateUser(ctx, 9999, UpdateUserParams{FullName: &fullName})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAuthService_DeleteUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	admin := createTestUser(t, svc, "administrador", "password1", domain.RoleAdministrator, true)
	victim := createTestUser(t, svc, "victim", "password1", domain.RoleUser, true)

	t.Run("self delete rejected", func(t *testing.T) {
		err := svc.DeleteUser(ctx, admin.ID, "administrador")
		if !errors.Is(err, ErrSelfDelete) {
			t.Errorf("expected ErrSelfDelete, got %v", err)
		}

		// The account must survive the rejected attempt.
		if _, err := svc.GetUser(ctx, admin.ID); err != nil {
			t.Errorf("admin missing after rejected self delete: %v", err)
		}
	})

	t.Run("delete other user", func(t *testing.T) {
		if err := svc.DeleteUser(ctx, victim.ID, "administrador"); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}
		_, err := svc.GetUser(ctx, victim.ID)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound after delete, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		err := svc.DeleteUser(ctx, 9999, "administrador")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAuthService_GetUser_IncludesDisabled(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	disabled := createTestUser(t, svc, "hidden", "password1", domain.RoleUser, false)

	// Administration views include disabled accounts; CurrentUser does not.
	user, err := svc.GetUser(ctx, disabled.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.IsEnabled {
		t.Error("expected disabled user")
	}

	if _, err := svc.CurrentUser(ctx, disabled.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("CurrentUser() expected ErrUserNotFound, got %v", err)
	}
}

func TestSeedUsers(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	if err := seedUsers(repo); err != nil {
		t.Fatalf("seedUsers() error = %v", err)
	}

	users, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(users))
	}

	admin, err := repo.FindByUsername("administrador")
	if err != nil {
		t.Fatalf("FindByUsername(administrador) error = %v", err)
	}
	if admin.Role != domain.RoleAdministrator {
		t.Errorf("admin.Role = %v, want %v", admin.Role, domain.RoleAdministrator)
	}
	if !admin.IsEnabled {
		t.Error("seeded admin should be enabled")
	}

	standard, err := repo.FindByUsername("usuari")
	if err != nil {
		t.Fatalf("FindByUsername(usuari) error = %v", err)
	}
	if standard.Role != domain.RoleUser {
		t.Errorf("usuari.Role = %v, want %v", standard.Role, domain.RoleUser)
	}

	// Seeding again must not duplicate rows.
	if err := seedUsers(repo); err != nil {
		t.Fatalf("seedUsers() second run error = %v", err)
	}
	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 users after reseeding, got %d", count)
	}
}
