package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoxService is the super-administrator surface for box records.
type BoxService struct {
	db *gorm.DB
}

func NewBoxService(db *gorm.DB) *BoxService {
	return &BoxService{db: db}
}

func (s *BoxService) Create(ctx context.Context, req *dto.CreateBoxRequest) (*models.Box, error) {
	if req.Name == "" {
		return nil, errors.New("box name is required")
	}

	box := models.Box{
		ID:       uuid.New(),
		Name:     req.Name,
		OwnerUID: req.OwnerUID,
		Address:  req.Address,
	}
	if err := s.db.WithContext(ctx).Create(&box).Error; err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	return &box, nil
}

func (s *BoxService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBoxRequest) (*models.Box, error) {
	var box models.Box
	if err := s.db.WithContext(ctx).First(&box, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&box).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update box: %w", err)
		}
	}
	return &box, nil
}

// Delete removes the box record only. Memberships and invitations that
// reference it go stale and are skipped during box resolution rather than
// cascaded away.
func (s *BoxService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Box{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete box: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
