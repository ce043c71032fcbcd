package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// authenticatedEmail returns the profile email resolved by the auth middleware.
func authenticatedEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}

// parseInterestsQuery parses the optional ?interests=a,b,c filter parameter.
// An absent or empty parameter yields nil, meaning "no filter".
func parseInterestsQuery(c *fiber.Ctx) []string {
	raw := c.Query("interests")
	if raw == "" {
		return nil
	}

	var interests []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}
	return interests
}
