package checkins

import (
	"errors"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckInHandler struct {
	checkInService *CheckInService
}

func NewCheckInHandler(checkInService *CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

func (h *CheckInHandler) CheckIn(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid class id",
		})
	}
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	record, err := h.checkInService.CheckIn(boxID, classID, uid)
	switch {
	case errors.Is(err, ErrClassNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Class not found",
		})
	case errors.Is(err, ErrClassFull):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": true, "message": "Class is at capacity",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to check in",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "check_in": record})
}

func (h *CheckInHandler) Cancel(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid class id",
		})
	}
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	err = h.checkInService.CancelCheckIn(classID, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Not checked in",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to cancel check-in",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Check-in cancelled"})
}

func (h *CheckInHandler) ListForClass(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid class id",
		})
	}

	list, err := h.checkInService.ListForClass(boxID, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve check-ins",
		})
	}
	return c.JSON(fiber.Map{"error": false, "check_ins": list})
}
