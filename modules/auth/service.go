package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
)

var (
	// ErrInvalidCredentials is returned for every login failure: unknown
	// username, disabled account or wrong password. The three causes are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrWrongPassword is returned when the current password given to a
	// password change does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrSelfDelete is returned when an administrator tries to delete
	// their own account.
	ErrSelfDelete = errors.New("cannot delete your own user account")
	// ErrUsernameTaken is returned when a username is already in use.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when an email is already in use.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidRole is returned when a role is outside the closed set.
	ErrInvalidRole = errors.New("role must be User or Administrator")
	// ErrInvalidEmail is returned when an email does not parse.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrPasswordTooShort is returned when a password is below the minimum.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrPasswordTooLong is returned when a password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// TokenResult is an issued token together with the user it identifies.
type TokenResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication and user management business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Authenticate verifies a username/password pair against the user table.
// Unknown user, disabled account and password mismatch all collapse into
// ErrInvalidCredentials so the caller cannot tell them apart.
func (s *AuthService) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsEnabled || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the credentials and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// CurrentUser loads the user behind an authenticated identity. A user that
// was deleted or disabled after the token was issued reports ErrUserNotFound.
func (s *AuthService) CurrentUser(_ context.Context, userID uint) (*domain.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsEnabled {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Refresh issues a fresh token for an already-authenticated user.
func (s *AuthService) Refresh(ctx context.Context, userID uint) (*TokenResult, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// ChangePassword replaces the user's password after verifying the current
// one. The stored hash is untouched unless every check passes.
func (s *AuthService) ChangePassword(_ context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.repo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// ValidateToken verifies a presented token and returns the authenticated
// identity it encodes. Validity is proven by signature and claim checks
// alone; the user table is not consulted.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}
	return &domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}

// ListUsers returns all user accounts.
func (s *AuthService) ListUsers(_ context.Context) ([]*domain.User, error) {
	return s.repo.FindAll()
}

// GetUser retrieves a user by ID, disabled accounts included.
func (s *AuthService) GetUser(_ context.Context, userID uint) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// CreateUserParams are the fields for a new user account.
type CreateUserParams struct {
	Username  string
	Password  string
	FullName  string
	Email     string
	Role      string
	IsEnabled bool
}

// CreateUser creates a new user account. Username and email must be unique
// across all users.
func (s *AuthService) CreateUser(_ context.Context, params CreateUserParams) (*domain.User, error) {
	if params.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(params.Username) > 50 {
		return nil, fmt.Errorf("username must be at most 50 characters")
	}
	if params.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if len(params.FullName) > 100 {
		return nil, fmt.Errorf("full name must be at most 100 characters")
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !domain.ValidRole(params.Role) {
		return nil, ErrInvalidRole
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}

	taken, err := s.repo.UsernameExists(params.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(params.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     params.Username,
		PasswordHash: hash,
		FullName:     params.FullName,
		Email:        params.Email,
		Role:         params.Role,
		IsEnabled:    params.IsEnabled,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserParams are the optional fields of a partial user update. Nil
// fields are left unchanged.
type UpdateUserParams struct {
	FullName  *string
	Email     *string
	Role      *string
	IsEnabled *bool
}

// UpdateUser applies a partial update to an existing user.
func (s *AuthService) UpdateUser(_ context.Context, userID uint, params UpdateUserParams) (*domain.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		if *params.FullName == "" {
			return nil, fmt.Errorf("full name cannot be empty")
		}
		if len(*params.FullName) > 100 {
			return nil, fmt.Errorf("full name must be at most 100 characters")
		}
		user.FullName = *params.FullName
	}

	if params.Email != nil {
		if _, err := mail.ParseAddress(*params.Email); err != nil {
			return nil, ErrInvalidEmail
		}
		taken, err := s.repo.EmailExists(*params.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *params.Email
	}

	if params.Role != nil {
		if !domain.ValidRole(*params.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *params.Role
	}

	if params.IsEnabled != nil {
		user.IsEnabled = *params.IsEnabled
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account. An administrator may not delete the
// account matching their own authenticated identity.
func (s *AuthService) DeleteUser(_ context.Context, userID uint, actorUsername string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	if user.Username == actorUsername {
		return ErrSelfDelete
	}

	return s.repo.Delete(userID)
}

func (s *AuthService) issueToken(user *domain.User) (*TokenResult, error) {
	token, expiresAt, err := s.jwt.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
