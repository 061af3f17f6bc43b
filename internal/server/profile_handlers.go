package server

import (
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUser(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req service.UpsertProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:user_id. A malformed id
// reads the same as an unknown user.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return models.RespondWithError(c,
			&models.AppError{Code: models.CodeNotFound, Message: "There is no profile for this user"})
	}

	profile, err := s.profileService.GetByUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile. It removes the user together
// with their profile and posts.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.accountService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req service.AddExperienceInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id. Unknown
// and malformed ids are a no-op; the current profile comes back either way.
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	expID, ok := parseID(c, "exp_id")
	if !ok {
		profile, err := s.profileService.GetByUser(c.Context(), currentUserID(c))
		if err != nil {
			return models.RespondWithError(c, err)
		}
		return c.JSON(profile)
	}

	profile, err := s.profileService.RemoveExperience(c.Context(), currentUserID(c), expID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req service.AddEducationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id. Unknown
// and malformed ids are a no-op; the current profile comes back either way.
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	eduID, ok := parseID(c, "edu_id")
	if !ok {
		profile, err := s.profileService.GetByUser(c.Context(), currentUserID(c))
		if err != nil {
			return models.RespondWithError(c, err)
		}
		return c.JSON(profile)
	}

	profile, err := s.profileService.RemoveEducation(c.Context(), currentUserID(c), eduID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.profileService.GithubRepos(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(repos)
}
