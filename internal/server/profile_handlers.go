package server

import (
	"fitnessfinder/internal/models"
	"fitnessfinder/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfiles handles GET /api/profiles. An optional ?interests=a,b filter
// restricts the result to profiles sharing at least one named interest.
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	interests := parseInterestsQuery(c)

	var (
		cards []models.ProfileCard
		err   error
	)
	if len(interests) > 0 {
		cards, err = s.profileService.FilterCards(c.Context(), interests)
	} else {
		cards, err = s.profileService.ListCards(c.Context())
	}
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"profiles": cards})
}

// GetProfileCard handles GET /api/profiles/:email
func (s *Server) GetProfileCard(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	card, err := s.profileService.Card(c.Context(), email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(card)
}

// GetMyProfileCard handles GET /api/profiles/me
func (s *Server) GetMyProfileCard(c *fiber.Ctx) error {
	card, err := s.profileService.Card(c.Context(), authenticatedEmail(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(card)
}

// UpdateMyProfile handles PUT /api/profiles/me. The profile key is always
// the authenticated email; a body email is ignored so members cannot edit
// other profiles.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = authenticatedEmail(c)

	if err := s.profileService.UpdateProfile(c.Context(), req); err != nil {
		return models.RespondWithAppError(c, err)
	}

	card, err := s.profileService.Card(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(card)
}

// GetInterests handles GET /api/interests
func (s *Server) GetInterests(c *fiber.Ctx) error {
	interests, err := s.profileService.Interests(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"interests": interests})
}
