package whiteboard

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxImageBytes = 10 << 20

type ScanHandler struct {
	scanService *ScanService
}

func NewScanHandler(scanService *ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

func (h *ScanHandler) Scan(c *fiber.Ctx) error {
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Image file is required",
		})
	}
	if fileHeader.Size > maxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": true, "message": "Image is too large",
		})
	}

	format := imageFormat(fileHeader.Filename)
	if format == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Image must be jpeg, png or webp",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Failed to read image",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Failed to read image",
		})
	}

	scan, err := h.scanService.Scan(c.UserContext(), boxID, uid, format, data)
	if err != nil && scan == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": true, "message": "Failed to upload image",
		})
	}
	if err != nil {
		// Stored but unreadable; the client can retry later.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": true, "message": "Could not read the whiteboard", "scan": scan,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "scan": scan})
}

func (h *ScanHandler) Get(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid box id",
		})
	}
	scanID, err := uuid.Parse(c.Params("scan_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid scan id",
		})
	}

	scan, err := h.scanService.Get(boxID, scanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "Scan not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve scan",
		})
	}
	return c.JSON(fiber.Map{"error": false, "scan": scan})
}

func (h *ScanHandler) List(c *fiber.Ctx) error {
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

	scans, err := h.scanService.ListForUser(boxID, uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve scans",
		})
	}
	return c.JSON(fiber.Map{"error": false, "scans": scans})
}

func imageFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".webp":
		return "webp"
	default:
		return ""
	}
}
