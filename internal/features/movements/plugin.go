package movements

import (
	"log/slog"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "movements" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Movement{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	if err := SeedCatalog(db, cfg.MovementsPath); err != nil {
		slog.Error("failed to seed movement catalog", "error", err)
	}

	handler := NewMovementHandler(NewMovementService(db))
	router.Get("/movements", handler.List)
}
