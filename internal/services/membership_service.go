package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/boxtrackhq/boxtrack-backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole        = errors.New("role must be admin, coach or member")
	ErrMembershipNotFound = errors.New("membership not found")
)

// MemberInfo is a membership joined with the member's profile fields for
// roster listings.
type MemberInfo struct {
	models.Membership
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
}

// MembershipService is the box-admin surface for the roster. Writes go
// through the membership store so live sessions see the change.
type MembershipService struct {
	db      *gorm.DB
	members *store.MembershipStore
}

func NewMembershipService(db *gorm.DB, members *store.MembershipStore) *MembershipService {
	return &MembershipService{db: db, members: members}
}

func (s *MembershipService) List(ctx context.Context, boxID uuid.UUID) ([]MemberInfo, error) {
	memberships, err := s.members.ForBox(ctx, boxID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []MemberInfo{}, nil
	}

	uids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		uids = append(uids, m.UserID)
	}

	var profiles []models.UserStats
	if err := s.db.WithContext(ctx).Where("uid IN ?", uids).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to load member profiles: %w", err)
	}
	byUID := make(map[string]models.UserStats, len(profiles))
	for _, p := range profiles {
		byUID[p.UID] = p
	}

	infos := make([]MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		info := MemberInfo{Membership: m}
		if p, ok := byUID[m.UserID]; ok {
			info.DisplayName = p.DisplayName
			info.Email = p.Email
			info.PhotoURL = p.PhotoURL
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *MembershipService) UpdateRole(ctx context.Context, boxID uuid.UUID, uid, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleCoach, models.RoleMember:
	default:
		return ErrInvalidRole
	}

	existing, err := s.members.Get(ctx, uid, boxID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMembershipNotFound
	}
	return s.members.UpdateRole(ctx, uid, boxID, role)
}

func (s *MembershipService) Remove(ctx context.Context, boxID uuid.UUID, uid string) error {
	existing, err := s.members.Get(ctx, uid, boxID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMembershipNotFound
	}
	return s.members.Delete(ctx, uid, boxID)
}
