package api

import (
	"strings"

	domain "github.com/MilorES/ComandesJSDR-Back/domain/user"
	"github.com/MilorES/ComandesJSDR-Back/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key under which the authenticated identity is
// stored in the Fiber context.
const UserContextKey = "user"

// AuthMiddleware verifies the bearer token on incoming requests. A request
// without a valid token is rejected before reaching any handler; on
// success the verified identity is bound to the request context.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}

// RequireRole rejects authenticated requests whose bound role does not
// match the required one. It must run after AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(UserContextKey).(*domain.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "User not authenticated",
			})
		}

		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Error:   "forbidden",
				Message: "Insufficient permissions for this resource",
			})
		}

		return c.Next()
	}
}

// currentClaims returns the identity bound by AuthMiddleware.
func currentClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}
