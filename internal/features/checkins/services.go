package checkins

import (
	"errors"
	"fmt"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/features/classes"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrClassNotFound = errors.New("class not found")
	ErrClassFull     = errors.New("class is at capacity")
)

type CheckInService struct {
	db *gorm.DB
}

func NewCheckInService(db *gorm.DB) *CheckInService {
	return &CheckInService{db: db}
}

// CheckIn marks the member present for a class. Re-checking in is a
// no-op, not an error.
func (s *CheckInService) CheckIn(boxID, classID uuid.UUID, uid string) (*CheckIn, error) {
	var plan classes.ClassPlan
	if err := s.db.First(&plan, "id = ? AND box_id = ?", classID, boxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to look up class: %w", err)
	}

	if plan.Capacity > 0 {
		var count int64
		if err := s.db.Model(&CheckIn{}).Where("class_id = ?", classID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count check-ins: %w", err)
		}
		if count >= int64(plan.Capacity) {
			return nil, ErrClassFull
		}
	}

	record := CheckIn{
		ID:          uuid.New(),
		BoxID:       boxID,
		ClassID:     classID,
		UserID:      uid,
		CheckedInAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	return &record, nil
}

func (s *CheckInService) CancelCheckIn(classID uuid.UUID, uid string) error {
	result := s.db.Delete(&CheckIn{}, "class_id = ? AND user_id = ?", classID, uid)
	if result.Error != nil {
		return fmt.Errorf("failed to cancel check-in: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForClass returns the class roster in arrival order.
func (s *CheckInService) ListForClass(boxID, classID uuid.UUID) ([]CheckIn, error) {
	var list []CheckIn
	err := s.db.
		Where("box_id = ? AND class_id = ?", boxID, classID).
		Order("checked_in_at asc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return list, nil
}
