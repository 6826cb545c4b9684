package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/MilorES/ComandesJSDR-Back/modules/article"
	"github.com/MilorES/ComandesJSDR-Back/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer    mono.ServiceContainer
	articleContainer mono.ServiceContainer
	authPort         auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, articleContainer mono.ServiceContainer, authPort auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer:    authContainer,
		articleContainer: articleContainer,
		authPort:         authPort,
	}
}

// Login authenticates a username/password pair and returns a fresh token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	authReq := auth.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toLoginResponse(resp))
}

// Me returns the authenticated user's profile.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	user, err := h.authPort.CurrentUser(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toUserResponse(*user))
}

// Refresh issues a fresh token for the authenticated user.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	authReq := auth.RefreshRequest{UserID: claims.UserID}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"refresh-token",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toLoginResponse(resp))
}

// ChangePassword replaces the authenticated user's password.
func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "Current and new passwords are required")
	}

	authReq := auth.ChangePasswordRequest{
		UserID:          claims.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	var resp auth.ChangePasswordResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"change-password",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Password changed successfully",
	})
}

// handleServiceError maps a service error to an HTTP response. Errors
// cross the service container as strings, so mapping matches known error
// messages; anything unknown is logged and reported as a generic internal
// error without leaking detail.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, auth.ErrInvalidCredentials.Error()):
		return unauthorized(c, "Invalid username or password")
	case strings.Contains(errStr, auth.ErrInvalidToken.Error()):
		return unauthorized(c, "Invalid or expired token")
	case strings.Contains(errStr, auth.ErrUserNotFound.Error()):
		return notFound(c, "User not found")
	case strings.Contains(errStr, article.ErrNotFound.Error()):
		return notFound(c, "Article not found")
	case strings.Contains(errStr, auth.ErrUsernameTaken.Error()):
		return conflict(c, "Username already exists")
	case strings.Contains(errStr, auth.ErrEmailTaken.Error()):
		return conflict(c, "Email already in use")
	case strings.Contains(errStr, article.ErrNameTaken.Error()):
		return conflict(c, "An article with this name already exists")
	case strings.Contains(errStr, auth.ErrSelfDelete.Error()):
		return badRequest(c, "You cannot delete your own user account")
	case strings.Contains(errStr, auth.ErrWrongPassword.Error()):
		return badRequest(c, "Current password is incorrect")
	case isValidationError(errStr):
		return badRequest(c, validationMessage(errStr))
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// isValidationError recognizes field validation failures by their message
// shape ("x is required", "x must be ...", "x cannot ...").
func isValidationError(errStr string) bool {
	return strings.Contains(errStr, "is required") ||
		strings.Contains(errStr, "must be") ||
		strings.Contains(errStr, "cannot be") ||
		strings.Contains(errStr, "invalid email format")
}

// validationMessage strips service call wrapping from a validation error
// so the client sees only the field message.
func validationMessage(errStr string) string {
	if idx := strings.LastIndex(errStr, ": "); idx >= 0 {
		return errStr[idx+2:]
	}
	return errStr
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
		Error:   "conflict",
		Message: message,
	})
}

func toLoginResponse(resp auth.LoginResponse) LoginResponse {
	return LoginResponse{
		Token:     resp.Token,
		Username:  resp.Username,
		FullName:  resp.FullName,
		Email:     resp.Email,
		Role:      resp.Role,
		ExpiresAt: resp.ExpiresAt,
	}
}

func toUserResponse(resp auth.UserResponse) UserResponse {
	return UserResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		FullName:  resp.FullName,
		Email:     resp.Email,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
		IsEnabled: resp.IsEnabled,
	}
}
