package handlers

import (
	"errors"
	"sync"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/identity"
	"github.com/boxtrackhq/boxtrack-backend/internal/services"
	"github.com/boxtrackhq/boxtrack-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHandler owns the live sessions, one per signed-in identity. A
// session is created on sign-in, rebuilt on demand after a restart, and
// torn down on logout or account deletion.
type SessionHandler struct {
	manager     *session.Manager
	authService *services.AuthService
	provider    identity.Provider

	mu       sync.Mutex
	sessions map[string]*session.Session
}

func NewSessionHandler(manager *session.Manager, authService *services.AuthService, provider identity.Provider) *SessionHandler {
	return &SessionHandler{
		manager:     manager,
		authService: authService,
		provider:    provider,
		sessions:    make(map[string]*session.Session),
	}
}

func (h *SessionHandler) session(uid string) *session.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[uid]; ok {
		return s
	}
	s := h.manager.NewSession()
	h.sessions[uid] = s
	return s
}

func (h *SessionHandler) dropSession(uid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[uid]; ok {
		s.Teardown()
		delete(h.sessions, uid)
	}
}

// SignIn verifies the provider ID token, runs the invitation gate and
// bootstraps the session.
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil || req.IDToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "ID token is required",
		})
	}

	ident, err := h.provider.Verify(c.UserContext(), req.IDToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Identity verification failed",
		})
	}

	sess := h.session(ident.UID)
	sess.BeginAuthentication()

	if err := h.manager.SignIn(c.UserContext(), ident, req.InviteToken); err != nil {
		h.dropSession(ident.UID)
		return h.gateError(c, err)
	}

	if err := sess.HandleIdentity(c.UserContext(), ident); err != nil {
		h.dropSession(ident.UID)
		return h.gateError(c, err)
	}

	pair, err := h.authService.GenerateTokenPair(ident)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to issue tokens",
		})
	}

	return c.JSON(dto.SignInResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Session:      sess.Snapshot(),
	})
}

func (h *SessionHandler) gateError(c *fiber.Ctx, err error) error {
	var mismatch *session.EmailMismatchError
	switch {
	case errors.Is(err, session.ErrInvitationRequired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "An invitation is required to join", Code: "invitation_required",
		})
	case errors.As(err, &mismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: mismatch.Error(), Code: "email_mismatch",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Sign-in failed",
		})
	}
}

// GetSession returns the current session snapshot, rebuilding the session
// from JWT claims when the process has restarted since sign-in.
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sess := h.session(uid)
	if sess.UID() == "" {
		ident := &identity.Identity{UID: uid, Email: boxscope.GetEmail(c)}
		if err := sess.HandleIdentity(c.UserContext(), ident); err != nil {
			h.dropSession(uid)
			return h.gateError(c, err)
		}
	}
	return c.JSON(sess.Snapshot())
}

// SetActiveBox switches the caller's active box.
func (h *SessionHandler) SetActiveBox(c *fiber.Ctx) error {
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ActiveBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	boxID, err := uuid.Parse(req.BoxID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid box id",
		})
	}

	sess := h.session(uid)
	if sess.UID() == "" {
		ident := &identity.Identity{UID: uid, Email: boxscope.GetEmail(c)}
		if err := sess.HandleIdentity(c.UserContext(), ident); err != nil {
			h.dropSession(uid)
			return h.gateError(c, err)
		}
	}

	err = sess.SetActiveBox(c.UserContext(), boxID)
	switch {
	case errors.Is(err, session.ErrBoxNotVisible):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Box is not visible to this account",
		})
	case errors.Is(err, session.ErrNotSignedIn):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not signed in",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to switch box",
		})
	}
	return c.JSON(sess.Snapshot())
}

// Refresh rotates the refresh token.
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Refresh token is required",
		})
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired refresh token",
		})
	}
	return c.JSON(fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout revokes the refresh token and tears the session down.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		if err := h.authService.Logout(req.RefreshToken); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to log out",
			})
		}
	}

	h.dropSession(uid)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// DeleteAccount removes the identity and all account data.
func (h *SessionHandler) DeleteAccount(c *fiber.Ctx) error {
	uid, err := boxscope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.authService.DeleteAccount(c.UserContext(), uid); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete account",
		})
	}

	h.dropSession(uid)
	return c.JSON(fiber.Map{"message": "Account deleted"})
}
