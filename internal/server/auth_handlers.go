package server

import (
	"time"

	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterUser handles POST /api/users
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	tok, err := s.accountService.Register(c.Context(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// Login handles POST /api/auth
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	tok, err := s.accountService.Authenticate(c.Context(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// GetCurrentUser handles GET /api/auth
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.accountService.GetCurrent(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// Logout handles POST /api/auth/logout. The token's jti is blacklisted in
// Redis until the token would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("tokenJTI").(string)
	exp, _ := c.Locals("tokenExp").(time.Time)

	if s.redis != nil && jti != "" {
		ttl := time.Until(exp)
		if ttl > 0 {
			s.redis.Set(c.Context(), blacklistKey(jti), "1", ttl)
		}
	}

	return c.JSON(fiber.Map{"msg": "Logged out"})
}
