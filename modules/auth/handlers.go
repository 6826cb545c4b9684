package auth

import (
	"context"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"github.com/go-monolith/mono"
)

// handleLogin handles the login service.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	result, err := m.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return toLoginResponse(result), nil
}

// handleRefresh re-issues a token for an authenticated user.
func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (LoginResponse, error) {
	result, err := m.service.Refresh(ctx, req.UserID)
	if err != nil {
		return LoginResponse{}, err
	}
	return toLoginResponse(result), nil
}

// handleValidateToken handles token validation. Verification failures are
// reported in the response rather than as errors, and without detail.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		return ValidateTokenResponse{
			Valid: false,
			Error: ErrInvalidToken.Error(),
		}, nil
	}

	return ValidateTokenResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}

// handleCurrentUser returns the profile behind an authenticated identity.
func (m *AuthModule) handleCurrentUser(ctx context.Context, req CurrentUserRequest, _ *mono.Msg) (UserResponse, error) {
	user, err := m.service.CurrentUser(ctx, req.UserID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// handleChangePassword handles password changes for the authenticated user.
func (m *AuthModule) handleChangePassword(ctx context.Context, req ChangePasswordRequest, _ *mono.Msg) (ChangePasswordResponse, error) {
	if err := m.service.ChangePassword(ctx, req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return ChangePasswordResponse{}, err
	}
	return ChangePasswordResponse{Changed: true}, nil
}

// handleListUsers handles the admin user listing.
func (m *AuthModule) handleListUsers(ctx context.Context, _ ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	users, err := m.service.ListUsers(ctx)
	if err != nil {
		return ListUsersResponse{}, err
	}

	response := ListUsersResponse{
		Users: make([]UserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, user := range users {
		response.Users = append(response.Users, toUserResponse(user))
	}
	return response, nil
}

// handleGetUser handles the admin user lookup, disabled accounts included.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (UserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// handleCreateUser handles admin user creation.
func (m *AuthModule) handleCreateUser(ctx context.Context, req CreateUserRequest, _ *mono.Msg) (UserResponse, error) {
	user, err := m.service.CreateUser(ctx, CreateUserParams{
		Username:  req.Username,
		Password:  req.Password,
		FullName:  req.FullName,
		Email:     req.Email,
		Role:      req.Role,
		IsEnabled: req.IsEnabled,
	})
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// handleUpdateUser handles admin partial user updates.
func (m *AuthModule) handleUpdateUser(ctx context.Context, req UpdateUserRequest, _ *mono.Msg) (UserResponse, error) {
	user, err := m.service.UpdateUser(ctx, req.UserID, UpdateUserParams{
		FullName:  req.FullName,
		Email:     req.Email,
		Role:      req.Role,
		IsEnabled: req.IsEnabled,
	})
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// handleDeleteUser handles admin user deletion with the self-delete guard.
func (m *AuthModule) handleDeleteUser(ctx context.Context, req DeleteUserRequest, _ *mono.Msg) (DeleteUserResponse, error) {
	if err := m.service.DeleteUser(ctx, req.UserID, req.ActorUsername); err != nil {
		return DeleteUserResponse{Deleted: false, UserID: req.UserID}, err
	}
	return DeleteUserResponse{Deleted: true, UserID: req.UserID}, nil
}

func toLoginResponse(result *TokenResult) LoginResponse {
	return LoginResponse{
		Token:     result.Token,
		Username:  result.User.Username,
		FullName:  result.User.FullName,
		Email:     result.User.Email,
		Role:      result.User.Role,
		ExpiresAt: result.ExpiresAt,
	}
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		IsEnabled: user.IsEnabled,
		CreatedAt: user.CreatedAt,
	}
}
