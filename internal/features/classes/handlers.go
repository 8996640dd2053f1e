package classes

import (
	"errors"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassHandler struct {
	classService *ClassService
}

func NewClassHandler(classService *ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

func (h *ClassHandler) List(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}

	// Default window: the current week.
	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if v := c.Query("from"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			from = parsed
		}
	}
	if v := c.Query("to"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			to = parsed
		}
	}

	plans, err := h.classService.ListRange(boxID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve classes",
		})
	}
	return c.JSON(fiber.Map{"error": false, "classes": plans})
}

func (h *ClassHandler) Get(c *fiber.Ctx) error {
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

	plan, err := h.classService.Get(boxID, classID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Class not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve class",
		})
	}
	return c.JSON(fiber.Map{"error": false, "class": plan})
}

func (h *ClassHandler) Create(c *fiber.Ctx) error {
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

	var in ClassInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	plan, err := h.classService.Create(boxID, uid, &in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "class": plan})
}

func (h *ClassHandler) Update(c *fiber.Ctx) error {
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

	var in ClassInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	plan, err := h.classService.Update(boxID, classID, &in)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Class not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to update class",
		})
	}
	return c.JSON(fiber.Map{"error": false, "class": plan})
}

func (h *ClassHandler) Delete(c *fiber.Ctx) error {
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

	err = h.classService.Delete(boxID, classID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Class not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to delete class",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Class deleted"})
}
