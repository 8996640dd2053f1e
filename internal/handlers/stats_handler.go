package handlers

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// StatsHandler is the /api/me profile surface.
type StatsHandler struct {
	stats *store.UserStatsStore
}

func NewStatsHandler(stats *store.UserStatsStore) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Get(c *fiber.Ctx) error {
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	stats, err := h.stats.Get(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to retrieve profile",
		})
	}
	if stats == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Profile not found",
		})
	}
	return c.JSON(stats)
}

// Update applies the provided profile fields; omitted fields keep their
// value.
func (h *StatsHandler) Update(c *fiber.Ctx) error {
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	stats, err := h.stats.Get(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to retrieve profile",
		})
	}
	if stats == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Profile not found",
		})
	}

	if req.DisplayName != nil {
		stats.DisplayName = *req.DisplayName
	}
	if req.BodyWeight != nil {
		stats.BodyWeight = *req.BodyWeight
	}

	weights := stats.MaxWeights.Data()
	if req.BackSquat != nil {
		weights.BackSquat = *req.BackSquat
	}
	if req.Deadlift != nil {
		weights.Deadlift = *req.Deadlift
	}
	if req.Clean != nil {
		weights.Clean = *req.Clean
	}
	if req.Snatch != nil {
		weights.Snatch = *req.Snatch
	}
	stats.MaxWeights = datatypes.NewJSONType(weights)

	if err := h.stats.Save(c.UserContext(), stats); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save profile",
		})
	}
	return c.JSON(stats)
}
