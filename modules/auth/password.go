package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used for password hashing. A cost
// of 12 keeps hashing slow enough to resist offline attacks while staying
// tolerable for interactive login.
const DefaultBcryptCost = 12

// PasswordHasher provides salted one-way password hashing and verification.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		cost: DefaultBcryptCost,
	}
}

// Hash generates a bcrypt hash of the given password. Each call salts
// independently, so hashing the same password twice yields different output.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the password matches the stored hash. A malformed
// hash verifies as false rather than failing.
func (h *PasswordHasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
