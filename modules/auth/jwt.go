package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every expected token verification
// failure: bad signature, wrong issuer or audience, expiry, malformed
// input. Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// TokenDuration is the fixed validity window for issued tokens.
const TokenDuration = time.Hour

// JWTConfig holds the token signing configuration. It is built once at
// startup and passed explicitly to the JWTManager; request-handling code
// never reads configuration from the environment.
type JWTConfig struct {
	SecretKey     string
	Issuer        string
	Audience      string
	TokenDuration time.Duration
}

// LoadJWTConfig reads the JWT configuration from environment variables.
// A missing or empty JWT_SECRET_KEY is a fatal configuration error: the
// process must refuse to start rather than sign tokens without a secret.
func LoadJWTConfig() (JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	config := JWTConfig{
		SecretKey:     secret,
		Issuer:        "comandes-api",
		Audience:      "comandes-api",
		TokenDuration: TokenDuration,
	}

	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}
	if audience := os.Getenv("JWT_AUDIENCE"); audience != "" {
		config.Audience = audience
	}

	return config, nil
}

// JWTClaims are the claims embedded in issued tokens.
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies signed tokens. It is stateless and safe
// for concurrent use.
type JWTManager struct {
	config JWTConfig
}

// NewJWTManager creates a JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{
		config: config,
	}
}

// Generate issues a signed token for the user, valid for the configured
// window from now. It returns the token string and its expiry time.
func (m *JWTManager) Generate(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.config.TokenDuration)

	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Audience:  jwt.ClaimStrings{m.config.Audience},
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies a token's signature, issuer, audience and expiry, with
// zero clock-skew leeway. On success it returns the embedded claims; on any
// expected failure it returns ErrInvalidToken without distinguishing the
// cause.
func (m *JWTManager) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
