package handlers

import (
	"errors"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/services"
	"github.com/boxtrackhq/boxtrack-backend/internal/session"
	"github.com/boxtrackhq/boxtrack-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
	invites           *session.InviteResolver
	boxes             *store.BoxStore
}

func NewInvitationHandler(invitationService *services.InvitationService, invites *session.InviteResolver, boxes *store.BoxStore) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, invites: invites, boxes: boxes}
}

// Create mints an invitation for the :box_id box.
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	inv, err := h.invitationService.Create(c.UserContext(), boxID, uid, &req)
	switch {
	case errors.Is(err, services.ErrDuplicateInvitation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(), Code: "duplicate_invitation",
		})
	case errors.Is(err, services.ErrInvalidInviteRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case err != nil:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// List returns the box's pending invitations.
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}

	invitations, err := h.invitationService.ListPending(c.UserContext(), boxID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list invitations",
		})
	}
	return c.JSON(fiber.Map{"invitations": invitations})
}

// Revoke expires a pending invitation.
func (h *InvitationHandler) Revoke(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}
	invitationID, err := uuid.Parse(c.Params("invitation_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid invitation id",
		})
	}

	err = h.invitationService.Revoke(c.UserContext(), boxID, invitationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Invitation not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to revoke invitation",
		})
	}
	return c.JSON(fiber.Map{"message": "Invitation revoked"})
}

// ResolveToken is the unauthenticated invite-link lookup used by the
// sign-in page. Unknown, used and expired tokens all look identical.
func (h *InvitationHandler) ResolveToken(c *fiber.Ctx) error {
	inv, err := h.invites.FindByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve invitation",
		})
	}
	if inv == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Invitation not found or no longer valid",
		})
	}

	boxName := ""
	if box, err := h.boxes.Get(c.UserContext(), inv.BoxID); err == nil && box != nil {
		boxName = box.Name
	}

	return c.JSON(dto.InviteTokenResponse{
		Email:   inv.Email,
		BoxName: boxName,
		Role:    inv.Role,
	})
}
