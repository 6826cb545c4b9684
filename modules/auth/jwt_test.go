package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:     "test-secret-key",
		Issuer:        "test-issuer",
		Audience:      "test-audience",
		TokenDuration: time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{
		ID:        42,
		Username:  "administrador",
		Email:     "admin@comandesjdsr.com",
		Role:      domain.RoleAdministrator,
		IsEnabled: true,
	}
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	config := testJWTConfig()
	manager := NewJWTManager(config)
	user := testUser()

	token, expiresAt, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if token == "" {
		t.Error("Generate() returned empty token")
	}

	remaining := time.Until(expiresAt)
	if remaining <= 59*time.Minute || remaining > time.Hour {
		t.Errorf("expiry %v from now, want about 1 hour", remaining)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.Username != user.Username {
		t.Errorf("claims.Username = %v, want %v", claims.Username, user.Username)
	}
	if claims.Email != user.Email {
		t.Errorf("claims.Email = %v, want %v", claims.Email, user.Email)
	}
	if claims.Role != user.Role {
		t.Errorf("claims.Role = %v, want %v", claims.Role, user.Role)
	}
	if claims.Issuer != config.Issuer {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, config.Issuer)
	}
	if claims.Subject != strconv.FormatUint(uint64(user.ID), 10) {
		t.Errorf("claims.Subject = %v, want %v", claims.Subject, user.ID)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Fatal("Validate() should return error for invalid token")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	config1 := testJWTConfig()
	config2 := testJWTConfig()
	config2.SecretKey = "a-different-secret"

	manager1 := NewJWTManager(config1)
	manager2 := NewJWTManager(config2)

	token, _, err := manager1.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = manager2.Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestJWTManager_WrongIssuerOrAudience(t *testing.T) {
	base := testJWTConfig()

	tests := []struct {
		name   string
		mutate func(c *JWTConfig)
	}{
		{
			name:   "wrong issuer",
			mutate: func(c *JWTConfig) { c.Issuer = "someone-else" },
		},
		{
			name:   "wrong audience",
			mutate: func(c *JWTConfig) { c.Audience = "another-api" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signConfig := base
			tt.mutate(&signConfig)

			token, _, err := NewJWTManager(signConfig).Generate(testUser())
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			_, err = NewJWTManager(base).Validate(token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.TokenDuration = -time.Minute // issued already expired
	manager := NewJWTManager(config)

	token, _, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Validation uses zero leeway, so an expired token fails immediately.
	_, err = NewJWTManager(testJWTConfig()).Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestLoadJWTConfig(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")

		_, err := LoadJWTConfig()
		if err == nil {
			t.Fatal("LoadJWTConfig() should fail without JWT_SECRET_KEY")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "some-secret")
		t.Setenv("JWT_ISSUER", "")
		t.Setenv("JWT_AUDIENCE", "")

		config, err := LoadJWTConfig()
		if err != nil {
			t.Fatalf("LoadJWTConfig() error = %v", err)
		}
		if config.SecretKey != "some-secret" {
			t.Errorf("SecretKey = %v, want some-secret", config.SecretKey)
		}
		if config.Issuer != "comandes-api" {
			t.Errorf("Issuer = %v, want comandes-api", config.Issuer)
		}
		if config.Audience != "comandes-api" {
			t.Errorf("Audience = %v, want comandes-api", config.Audience)
		}
		if config.TokenDuration != time.Hour {
			t.Errorf("TokenDuration = %v, want 1h", config.TokenDuration)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "some-secret")
		t.Setenv("JWT_ISSUER", "custom-issuer")
		t.Setenv("JWT_AUDIENCE", "custom-audience")

		config, err := LoadJWTConfig()
		if err != nil {
			t.Fatalf("LoadJWTConfig() error = %v", err)
		}
		if config.Issuer != "custom-issuer" {
			t.Errorf("Issuer = %v, want custom-issuer", config.Issuer)
		}
		if config.Audience != "custom-audience" {
			t.Errorf("Audience = %v, want custom-audience", config.Audience)
		}
	})
}
