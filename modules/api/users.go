package api

import (
	"encoding/json"

	"github.com/MilorES/ComandesJSDR-Back/modules/auth"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// ListUsers returns all user accounts. Administrator only.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	var resp auth.ListUsersResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"list-users",
		json.Marshal,
		json.Unmarshal,
		&auth.ListUsersRequest{},
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	users := make([]UserResponse, 0, len(resp.Users))
	for _, user := range resp.Users {
		users = append(users, toUserResponse(user))
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUser returns a single user account by ID. Administrator only.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid user ID")
	}

	authReq := auth.GetUserRequest{UserID: uint(id)}
	var resp auth.UserResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"get-user",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toUserResponse(resp))
}

// CreateUser creates a new user account. Administrator only.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" || req.FullName == "" || req.Email == "" || req.Role == "" {
		return badRequest(c, "Username, password, full name, email and role are required")
	}

	isEnabled := true
	if req.IsEnabled != nil {
		isEnabled = *req.IsEnabled
	}

	authReq := auth.CreateUserRequest{
		Username:  req.Username,
		Password:  req.Password,
		FullName:  req.FullName,
		Email:     req.Email,
		Role:      req.Role,
		IsEnabled: isEnabled,
	}
	var resp auth.UserResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"create-user",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(resp))
}

// UpdateUser applies a partial update to a user account. Administrator only.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	authReq := auth.UpdateUserRequest{
		UserID:    uint(id),
		FullName:  req.FullName,
		Email:     req.Email,
		Role:      req.Role,
		IsEnabled: req.IsEnabled,
	}
	var resp auth.UserResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"update-user",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toUserResponse(resp))
}

// DeleteUser removes a user account. Administrator only; the self-delete
// guard in the auth module rejects deleting the acting administrator's
// own account.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid user ID")
	}

	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	authReq := auth.DeleteUserRequest{
		UserID:        uint(id),
		ActorUsername: claims.Username,
	}
	var resp auth.DeleteUserResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"delete-user",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "User deleted successfully",
	})
}
