package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns the evaluated feature flags for the caller.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(callerID(c)),
	})
}
