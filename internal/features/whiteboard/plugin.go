package whiteboard

import (
	"context"
	"log/slog"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "whiteboard" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Scan{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	if cfg.GeminiAPIKey == "" {
		slog.Warn("whiteboard scanning disabled, no Gemini API key configured")
		return
	}

	analyzer, err := NewAnalyzer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("failed to initialize whiteboard analyzer", "error", err)
		return
	}

	var uploader *Uploader
	if cfg.MediaUploadURL != "" {
		uploader = NewUploader(cfg.MediaUploadURL, cfg.MediaUploadKey)
	}

	handler := NewScanHandler(NewScanService(db, analyzer, uploader, cfg.AITimeout))

	router.Post("/whiteboard", handler.Scan)
	router.Get("/whiteboard", handler.List)
	router.Get("/whiteboard/:scan_id", handler.Get)
}
