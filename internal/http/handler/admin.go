package handler

import (
	"github.com/gofiber/fiber/v2"

	"bluecarbon/internal/satellite"
	"bluecarbon/internal/service"
)

// AdminOverview aggregates stored run counts for the admin dashboard.
func AdminOverview(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := svc.Overview(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(o)
	}
}

// SatelliteAnalysis returns a fabricated vegetation-change analysis for a
// project area. Demo data only; no imagery is fetched.
func SatelliteAnalysis() fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID := c.Params("projectID")
		if projectID == "" {
			return writeError(c, fiber.StatusBadRequest, "PROJECT_ID_REQUIRED", "project id is required")
		}
		return c.JSON(satellite.Analyze(projectID))
	}
}
