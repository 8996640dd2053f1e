package scores

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "scores" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Score{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewScoreHandler(NewScoreService(db))

	router.Post("/scores", handler.Record)
	router.Get("/scores/:movement_id", handler.History)
	router.Get("/scores/:movement_id/pr", handler.PersonalRecord)
}
