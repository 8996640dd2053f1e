package movements

import (
	"github.com/gofiber/fiber/v2"
)

type MovementHandler struct {
	movementService *MovementService
}

func NewMovementHandler(movementService *MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

func (h *MovementHandler) List(c *fiber.Ctx) error {
	catalog, err := h.movementService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve movements",
		})
	}
	return c.JSON(fiber.Map{"error": false, "movements": catalog})
}
