package handlers

import (
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/database"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	var boxCount int64
	h.db.Model(&models.Box{}).Count(&boxCount)

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		BoxCount:  boxCount,
	})
}
