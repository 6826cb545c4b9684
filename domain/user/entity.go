package user

import (
	"time"
)

// Roles form a closed set. Anything else is rejected on create and update.
const (
	RoleUser          = "User"
	RoleAdministrator = "Administrator"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdministrator
}

// User represents a user account in the system.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string `gorm:"size:100;not null"`
	Email        string `gorm:"uniqueIndex;size:100;not null"`
	Role         string `gorm:"size:20;not null;default:User"`
	IsEnabled    bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the authenticated identity bound to a request after token
// verification.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdministrator reports whether the identity carries the administrator role.
func (c *Claims) IsAdministrator() bool {
	return c.Role == RoleAdministrator
}
