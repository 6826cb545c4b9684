package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the interface other modules use to access auth functionality.
type AuthPort interface {
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	CurrentUser(ctx context.Context, userID uint) (*UserResponse, error)
}

// AuthAdapter implements AuthPort over the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// ValidateToken verifies a token and returns the identity it encodes.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"validate-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		UserID:   resp.UserID,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}, nil
}

// CurrentUser loads the profile behind an authenticated identity.
func (a *AuthAdapter) CurrentUser(ctx context.Context, userID uint) (*UserResponse, error) {
	req := CurrentUserRequest{UserID: userID}
	var resp UserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"current-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("current-user request failed: %w", err)
	}

	return &resp, nil
}
