// Package store provides the Postgres-backed implementations of the
// session store contracts. Reads run through a decode-with-defaults
// boundary so callers never re-derive field defaults; membership writes
// publish change notifications for live sessions.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/boxtrackhq/boxtrack-backend/internal/watch"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Stores struct {
	Stats       *UserStatsStore
	Boxes       *BoxStore
	Memberships *MembershipStore
	Invitations *InvitationStore
}

func New(db *gorm.DB, hub *watch.Hub) *Stores {
	return &Stores{
		Stats:       &UserStatsStore{db: db},
		Boxes:       &BoxStore{db: db},
		Memberships: &MembershipStore{db: db, hub: hub},
		Invitations: &InvitationStore{db: db},
	}
}

// ---------------------------------------------------------------------------
// UserStats

type UserStatsStore struct {
	db *gorm.DB
}

func (s *UserStatsStore) Get(ctx context.Context, uid string) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.WithContext(ctx).First(&stats, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", uid, err)
	}
	if stats.Role == "" {
		stats.Role = models.RoleMember
	}
	return &stats, nil
}

func (s *UserStatsStore) Save(ctx context.Context, stats *models.UserStats) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		UpdateAll: true,
	}).Create(stats).Error; err != nil {
		return fmt.Errorf("failed to save profile %s: %w", stats.UID, err)
	}
	return nil
}

func (s *UserStatsStore) SetCurrentBox(ctx context.Context, uid string, boxID *uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.UserStats{}).
		Where("uid = ?", uid).
		Update("current_box_id", boxID).Error
	if err != nil {
		return fmt.Errorf("failed to persist active box for %s: %w", uid, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Boxes

type BoxStore struct {
	db *gorm.DB
}

func (s *BoxStore) Get(ctx context.Context, id uuid.UUID) (*models.Box, error) {
	var box models.Box
	err := s.db.WithContext(ctx).First(&box, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read box %s: %w", id, err)
	}
	return &box, nil
}

func (s *BoxStore) All(ctx context.Context) ([]models.Box, error) {
	var boxes []models.Box
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&boxes).Error; err != nil {
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}
	return boxes, nil
}

// ---------------------------------------------------------------------------
// Memberships

type MembershipStore struct {
	db  *gorm.DB
	hub *watch.Hub
}

func (s *MembershipStore) ForUser(ctx context.Context, uid string) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("joined_at asc").
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for %s: %w", uid, err)
	}
	return memberships, nil
}

func (s *MembershipStore) ForBox(ctx context.Context, boxID uuid.UUID) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("box_id = ?", boxID).
		Order("joined_at asc").
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for box %s: %w", boxID, err)
	}
	return memberships, nil
}

func (s *MembershipStore) Get(ctx context.Context, uid string, boxID uuid.UUID) (*models.Membership, error) {
	var m models.Membership
	err := s.db.WithContext(ctx).First(&m, "id = ?", models.MembershipID(uid, boxID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read membership: %w", err)
	}
	return &m, nil
}

// Create inserts the membership, leaving an existing (user, box) row
// untouched, and notifies the user's live sessions.
func (s *MembershipStore) Create(ctx context.Context, m *models.Membership) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("failed to create membership %s: %w", m.ID, err)
	}
	s.hub.Publish(m.UserID)
	return nil
}

func (s *MembershipStore) UpdateRole(ctx context.Context, uid string, boxID uuid.UUID, role string) error {
	err := s.db.WithContext(ctx).Model(&models.Membership{}).
		Where("id = ?", models.MembershipID(uid, boxID)).
		Update("role", role).Error
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	s.hub.Publish(uid)
	return nil
}

func (s *MembershipStore) Delete(ctx context.Context, uid string, boxID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Delete(&models.Membership{}, "id = ?", models.MembershipID(uid, boxID)).Error
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	s.hub.Publish(uid)
	return nil
}

func (s *MembershipStore) DeleteForUser(ctx context.Context, uid string) error {
	err := s.db.WithContext(ctx).Delete(&models.Membership{}, "user_id = ?", uid).Error
	if err != nil {
		return fmt.Errorf("failed to delete memberships for %s: %w", uid, err)
	}
	s.hub.Publish(uid)
	return nil
}

// ---------------------------------------------------------------------------
// Invitations

type InvitationStore struct {
	db *gorm.DB
}

func (s *InvitationStore) PendingByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := s.db.WithContext(ctx).
		Where("lower(email) = lower(?)", email).
		Where("status = ?", models.InviteStatusPending).
		Order("created_at asc").
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invitations: %w", err)
	}
	return invitations, nil
}

func (s *InvitationStore) PendingByTokenID(ctx context.Context, tokenID string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).
		Where("token_id = ? AND status = ?", tokenID, models.InviteStatusPending).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read invitation by token: %w", err)
	}
	return &inv, nil
}

func (s *InvitationStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ?", id).
		Update("status", models.InviteStatusUsed).Error
	if err != nil {
		return fmt.Errorf("failed to mark invitation used: %w", err)
	}
	return nil
}
