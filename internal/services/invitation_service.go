package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/mailer"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateInvitation = errors.New("a pending invitation already exists for this email and box")
	ErrInvalidInviteRole   = errors.New("invitation role must be member, coach, admin or visitor")
)

// InvitationService owns the admin side of invitations: minting, listing
// and revoking. Acceptance lives in the session bootstrap.
type InvitationService struct {
	db   *gorm.DB
	cfg  *config.Config
	mail *mailer.Enqueuer
}

func NewInvitationService(db *gorm.DB, cfg *config.Config, mail *mailer.Enqueuer) *InvitationService {
	return &InvitationService{db: db, cfg: cfg, mail: mail}
}

// Create mints a pending invitation with a one-time token and queues the
// invite mail. Mail delivery is best effort; a queue outage never loses
// the invitation itself, since acceptance also matches by email.
func (s *InvitationService) Create(ctx context.Context, boxID uuid.UUID, invitedBy string, req *dto.CreateInvitationRequest) (*models.Invitation, error) {
	if req.Email == "" {
		return nil, errors.New("email is required")
	}
	switch req.Role {
	case models.RoleMember, models.RoleCoach, models.RoleAdmin, models.RoleVisitor:
	default:
		return nil, ErrInvalidInviteRole
	}

	var existing models.Invitation
	err := s.db.WithContext(ctx).
		Where("lower(email) = lower(?) AND box_id = ? AND status = ?", req.Email, boxID, models.InviteStatusPending).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateInvitation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing invitations: %w", err)
	}

	raw, tokenID, secretHash, err := models.NewInvitationToken()
	if err != nil {
		return nil, err
	}

	inv := models.Invitation{
		ID:                   uuid.New(),
		Email:                req.Email,
		BoxID:                boxID,
		Role:                 req.Role,
		TokenID:              tokenID,
		TokenHash:            secretHash,
		Status:               models.InviteStatusPending,
		InvitedBy:            invitedBy,
		VisitorExpiresInDays: req.VisitorExpiresInDays,
		CreatedAt:            time.Now(),
		ExpiresAt:            time.Now().AddDate(0, 0, s.cfg.InviteExpiryDays),
	}
	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.deliver(ctx, &inv, raw)
	return &inv, nil
}

func (s *InvitationService) deliver(ctx context.Context, inv *models.Invitation, rawToken string) {
	if s.mail == nil {
		return
	}

	var box models.Box
	if err := s.db.WithContext(ctx).First(&box, "id = ?", inv.BoxID).Error; err != nil {
		slog.Error("failed to load box for invitation mail", "box_id", inv.BoxID, "error", err)
		return
	}

	err := s.mail.EnqueueInvitation(ctx, mailer.InvitationPayload{
		Email:     inv.Email,
		BoxName:   box.Name,
		Role:      inv.Role,
		Token:     rawToken,
		ExpiresAt: inv.ExpiresAt,
	})
	if err != nil {
		slog.Error("failed to enqueue invitation mail", "email", inv.Email, "error", err)
	}
}

// ListPending returns the pending invitations of one box, oldest first.
func (s *InvitationService) ListPending(ctx context.Context, boxID uuid.UUID) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := s.db.WithContext(ctx).
		Where("box_id = ? AND status = ?", boxID, models.InviteStatusPending).
		Order("created_at asc").
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Revoke expires a pending invitation so it can no longer gate a sign-up.
func (s *InvitationService) Revoke(ctx context.Context, boxID, invitationID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND box_id = ? AND status = ?", invitationID, boxID, models.InviteStatusPending).
		Update("status", models.InviteStatusExpired)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
