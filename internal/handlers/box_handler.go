package handlers

import (
	"errors"

	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/services"
	"github.com/boxtrackhq/boxtrack-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoxHandler is the super-administrator CRUD surface for boxes.
type BoxHandler struct {
	boxService *services.BoxService
	boxes      *store.BoxStore
}

func NewBoxHandler(boxService *services.BoxService, boxes *store.BoxStore) *BoxHandler {
	return &BoxHandler{boxService: boxService, boxes: boxes}
}

func (h *BoxHandler) List(c *fiber.Ctx) error {
	boxes, err := h.boxes.All(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list boxes",
		})
	}
	return c.JSON(fiber.Map{"boxes": boxes})
}

func (h *BoxHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("box_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}

	box, err := h.boxes.Get(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to retrieve box",
		})
	}
	if box == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Box not found",
		})
	}
	return c.JSON(box)
}

func (h *BoxHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	box, err := h.boxService.Create(c.UserContext(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(box)
}

func (h *BoxHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("box_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}

	var req dto.UpdateBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	box, err := h.boxService.Update(c.UserContext(), id, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Box not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update box",
		})
	}
	return c.JSON(box)
}

func (h *BoxHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("box_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}

	err = h.boxService.Delete(c.UserContext(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Box not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete box",
		})
	}
	return c.JSON(fiber.Map{"message": "Box deleted"})
}
