package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bluecarbon/internal/checklist"
)

// seedChecklistRequest is the body for seeding a review session.
type seedChecklistRequest struct {
	Items []checklist.Item `json:"items"`
}

// SeedChecklist creates (or replaces) the checklist session for a run from
// the caller-supplied initial items.
func SeedChecklist(store *checklist.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req seedChecklistRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if len(req.Items) == 0 {
			return writeError(c, fiber.StatusBadRequest, "ITEMS_REQUIRED", "at least one checklist item is required")
		}
		for i := range req.Items {
			if req.Items[i].Status == "" {
				req.Items[i].Status = checklist.StatusPending
			}
		}

		items := store.Seed(id, req.Items)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"items": items})
	}
}

// GetChecklist returns the current snapshot of a run's checklist session.
func GetChecklist(store *checklist.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := store.Items(id)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "checklist session not found")
		}
		return c.JSON(fiber.Map{"items": items})
	}
}

// ToggleChecklistItem advances one item along the review cycle and returns
// the complete updated list.
func ToggleChecklistItem(store *checklist.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		itemID := c.Params("itemID")

		items, err := store.Toggle(id, itemID)
		if err != nil {
			if errors.Is(err, checklist.ErrSessionNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "checklist session not found")
			}
			if errors.Is(err, checklist.ErrItemNotFound) {
				return writeError(c, fiber.StatusNotFound, "ITEM_NOT_FOUND", "checklist item not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"items": items})
	}
}
