package auth

import (
	"errors"
	"fmt"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles user persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *UserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *UserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByUsername retrieves a user by exact username match.
func (r *UserRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindAll retrieves all users ordered by ID.
func (r *UserRepository) FindAll() ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update persists all fields of an existing user.
func (r *UserRepository) Update(user *domain.User) error {
	result := r.db.Model(&domain.User{}).Where("id = ?", user.ID).
		Select("Username", "PasswordHash", "FullName", "Email", "Role", "IsEnabled").
		Updates(user)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.User{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UsernameExists checks whether a user with the given username exists.
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// EmailExists checks whether a user other than excludeID uses the email.
func (r *UserRepository) EmailExists(email string, excludeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.User{}).Where("email = ? AND id <> ?", email, excludeID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// Count returns the number of user rows.
func (r *UserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
