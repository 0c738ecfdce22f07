package server

import (
	"simonev/internal/models"
	"simonev/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserRequest is the create/update payload for an account. SkpdID is required
// for publishers and rejected for every other role.
type UserRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	SkpdID   *uint       `json:"skpd_id"`
	IsActive *bool       `json:"is_active"`
}

// CreateUser creates an account. Accounts are provisioned by admins; there is
// no self-service signup.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		CallerID: callerID(c),
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		SkpdID:   req.SkpdID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser edits an account. A blank password keeps the current one.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := s.userService.UpdateUser(c.Context(), service.UpdateUserInput{
		CallerID: callerID(c),
		UserID:   id,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		SkpdID:   req.SkpdID,
		IsActive: isActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUser returns one account.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUsers lists all accounts.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}
