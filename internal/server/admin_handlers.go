package server

import (
	"fitnessfinder/internal/database"
	"fitnessfinder/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSchemaStatus reports the schema management mode and migration state.
// Admin only; useful when verifying a deploy applied its migrations.
func (s *Server) GetSchemaStatus(c *fiber.Ctx) error {
	status, err := database.GetSchemaStatus(c.UserContext(), s.db, s.config)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	pending := make([]int, 0, len(status.PendingMigrations))
	for _, m := range status.PendingMigrations {
		pending = append(pending, m.Version)
	}

	return c.JSON(fiber.Map{
		"mode":              status.Mode,
		"environment":       status.Environment,
		"appliedVersions":   status.AppliedVersions,
		"pendingMigrations": pending,
	})
}
