package auth

import (
	"time"
)

// LoginRequest represents a login service request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a login or refresh service response.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshRequest represents a token refresh service request.
type RefreshRequest struct {
	UserID uint `json:"user_id"`
}

// ValidateTokenRequest represents a token validation service request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation service response.
type ValidateTokenResponse struct {
	Valid    bool   `json:"valid"`
	UserID   uint   `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CurrentUserRequest represents a current-user service request.
type CurrentUserRequest struct {
	UserID uint `json:"user_id"`
}

// ChangePasswordRequest represents a change-password service request.
type ChangePasswordRequest struct {
	UserID          uint   `json:"user_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePasswordResponse represents a change-password service response.
type ChangePasswordResponse struct {
	Changed bool `json:"changed"`
}

// UserResponse represents a user in service responses, without the
// password hash.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsEnabled bool      `json:"is_enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsersRequest represents a list-users service request.
type ListUsersRequest struct{}

// ListUsersResponse represents a list-users service response.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// GetUserRequest represents a get-user service request.
type GetUserRequest struct {
	UserID uint `json:"user_id"`
}

// CreateUserRequest represents a create-user service request.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsEnabled bool   `json:"is_enabled"`
}

// UpdateUserRequest represents an update-user service request. Nil fields
// are left unchanged.
type UpdateUserRequest struct {
	UserID    uint    `json:"user_id"`
	FullName  *string `json:"full_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsEnabled *bool   `json:"is_enabled,omitempty"`
}

// DeleteUserRequest represents a delete-user service request. ActorUsername
// is the authenticated administrator performing the deletion.
type DeleteUserRequest struct {
	UserID        uint   `json:"user_id"`
	ActorUsername string `json:"actor_username"`
}

// DeleteUserResponse represents a delete-user service response.
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
	UserID  uint `json:"user_id"`
}
