package api

import "time"

// LoginRequest represents a login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a login or refresh response.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChangePasswordRequest represents a password change request body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserResponse represents a user profile, without the password hash.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	IsEnabled bool      `json:"isEnabled"`
}

// CreateUserRequest represents an admin user creation request body.
// IsEnabled defaults to true when omitted.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsEnabled *bool  `json:"isEnabled"`
}

// UpdateUserRequest represents an admin partial user update request body.
type UpdateUserRequest struct {
	FullName  *string `json:"fullName"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	IsEnabled *bool   `json:"isEnabled"`
}

// ArticleResponse represents an article.
type ArticleResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Category    string     `json:"category"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreateArticleRequest represents an article creation request body.
// Active defaults to true when omitted.
type CreateArticleRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Active      *bool   `json:"active"`
}

// UpdateArticleRequest represents a partial article update request body.
type UpdateArticleRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Active      *bool    `json:"active"`
}

// MessageResponse represents a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
