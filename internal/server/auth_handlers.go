package server

import (
	"strconv"
	"time"

	"simonev/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL bounds how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

// LoginRequest is the login request payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login authenticates by username and password and issues a signed JWT.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(LoginResponse{Token: token, User: user})
}

// Me returns the authenticated caller's account.
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), callerID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// generateToken signs a JWT carrying the account's identity and role. The
// skpd_id claim is present only for publisher accounts.
func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"iss":  "simonev-api",
		"aud":  "simonev-client",
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  uuid.NewString(),
	}
	if user.Role == models.RolePublisher && user.SkpdID != nil {
		claims["skpd_id"] = *user.SkpdID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
