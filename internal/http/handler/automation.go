package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bluecarbon/internal/report"
)

type generateReportRequest struct {
	ProjectID string `json:"project_id"`
}

// LaunchReport starts the browser-automation run for a project as a detached
// process and returns immediately; the caller polls PollReport for the result.
func LaunchReport(launcher *report.Launcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateReportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.ProjectID == "" {
			return writeError(c, fiber.StatusBadRequest, "PROJECT_ID_REQUIRED", "project id is required")
		}

		if err := launcher.Launch(req.ProjectID); err != nil {
			if errors.Is(err, report.ErrInvalidProjectID) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_PROJECT_ID", "invalid project id")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"success": true,
			"message": "automation process launched",
		})
	}
}

// PollReport checks for a finished automation report. The file is deleted
// after one successful read; while it does not exist the run is "pending",
// which is deliberately indistinguishable from a stuck run.
func PollReport(store *report.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID := c.Params("projectID")

		data, ready, err := store.Consume(projectID)
		if err != nil {
			if errors.Is(err, report.ErrInvalidProjectID) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_PROJECT_ID", "invalid project id")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if !ready {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "pending"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(data)
	}
}
