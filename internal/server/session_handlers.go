package server

import (
	"fitnessfinder/internal/models"
	"fitnessfinder/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSessions handles GET /api/sessions. An optional ?interests=a,b filter
// restricts the result to sessions tagged with at least one named interest.
func (s *Server) GetSessions(c *fiber.Ctx) error {
	interests := parseInterestsQuery(c)

	var (
		cards []models.SessionCard
		err   error
	)
	if len(interests) > 0 {
		cards, err = s.sessionService.FilterCards(c.Context(), interests)
	} else {
		cards, err = s.sessionService.ListCards(c.Context())
	}
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": cards})
}

// GetSessionCard handles GET /api/sessions/:id
func (s *Server) GetSessionCard(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Session ID is required"))
	}

	card, err := s.sessionService.Card(c.Context(), sessionID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(card)
}

// AddSession handles POST /api/sessions. The creator is always the
// authenticated member; a body owner is ignored.
func (s *Server) AddSession(c *fiber.Ctx) error {
	var req service.AddSessionInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Owner = authenticatedEmail(c)

	session, err := s.sessionService.AddSession(c.Context(), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	card, err := s.sessionService.Card(c.Context(), session.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(card)
}

// JoinSession handles POST /api/sessions/:id/join
func (s *Server) JoinSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	if err := s.sessionService.Join(c.Context(), authenticatedEmail(c), sessionID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	card, err := s.sessionService.Card(c.Context(), sessionID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(card)
}

// UnjoinSession handles POST /api/sessions/:id/unjoin
func (s *Server) UnjoinSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	if err := s.sessionService.Unjoin(c.Context(), authenticatedEmail(c), sessionID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	card, err := s.sessionService.Card(c.Context(), sessionID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(card)
}

// DeleteSession handles DELETE /api/sessions/:id. Only the session creator
// may delete it; the service enforces ownership.
func (s *Server) DeleteSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	if err := s.sessionService.Delete(c.Context(), authenticatedEmail(c), sessionID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Session deleted"})
}
