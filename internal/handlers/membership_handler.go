package handlers

import (
	"errors"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MembershipHandler struct {
	membershipService *services.MembershipService
}

func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// List returns the box roster with profile fields joined in.
func (h *MembershipHandler) List(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}

	members, err := h.membershipService.List(c.UserContext(), boxID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list members",
		})
	}
	return c.JSON(fiber.Map{"members": members})
}

// UpdateRole changes a member's role inside the box.
func (h *MembershipHandler) UpdateRole(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}
	memberUID := c.Params("uid")
	if memberUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Member uid is required",
		})
	}

	var req dto.UpdateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	err = h.membershipService.UpdateRole(c.UserContext(), boxID, memberUID, req.Role)
	switch {
	case errors.Is(err, services.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrMembershipNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Membership not found",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update role",
		})
	}
	return c.JSON(fiber.Map{"message": "Role updated"})
}

// Remove takes a member out of the box.
func (h *MembershipHandler) Remove(c *fiber.Ctx) error {
	boxID, err := boxscope.GetBoxID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}
	memberUID := c.Params("uid")
	if memberUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Member uid is required",
		})
	}

	err = h.membershipService.Remove(c.UserContext(), boxID, memberUID)
	switch {
	case errors.Is(err, services.ErrMembershipNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Membership not found",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove member",
		})
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}
