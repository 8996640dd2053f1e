package scores

import (
	"errors"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/gofiber/fiber/v2"
)

type ScoreHandler struct {
	scoreService *ScoreService
}

func NewScoreHandler(scoreService *ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

func (h *ScoreHandler) Record(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var in ScoreInput
	if err := c.BodyParser(&in); err != nil || in.MovementID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Movement and value are required",
		})
	}

	score, err := h.scoreService.Record(boxID, uid, &in)
	if errors.Is(err, ErrUnknownMovement) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Unknown movement",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "score": score})
}

func (h *ScoreHandler) History(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	list, err := h.scoreService.History(boxID, uid, c.Params("movement_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve scores",
		})
	}
	return c.JSON(fiber.Map{"error": false, "scores": list})
}

func (h *ScoreHandler) PersonalRecord(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	best, err := h.scoreService.PersonalRecord(boxID, uid, c.Params("movement_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to compute personal record",
		})
	}
	if best == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "No scores logged for this movement",
		})
	}
	return c.JSON(fiber.Map{"error": false, "personal_record": best})
}
