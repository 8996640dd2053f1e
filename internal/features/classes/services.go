package classes

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClassService struct {
	db *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{db: db}
}

type ClassInput struct {
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"starts_at"`
	DurationMin int       `json:"duration_min"`
	Capacity    int       `json:"capacity"`
	Sections    []Section `json:"sections"`
}

func (s *ClassService) Create(boxID uuid.UUID, coachUID string, in *ClassInput) (*ClassPlan, error) {
	if in.Title == "" {
		return nil, errors.New("class title is required")
	}
	if in.StartsAt.IsZero() {
		return nil, errors.New("class start time is required")
	}

	plan := ClassPlan{
		ID:          uuid.New(),
		BoxID:       boxID,
		Title:       in.Title,
		CoachUID:    coachUID,
		StartsAt:    in.StartsAt,
		DurationMin: in.DurationMin,
		Capacity:    in.Capacity,
		Sections:    datatypes.NewJSONType(in.Sections),
	}
	if plan.DurationMin <= 0 {
		plan.DurationMin = 60
	}
	if err := s.db.Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return &plan, nil
}

func (s *ClassService) Update(boxID, classID uuid.UUID, in *ClassInput) (*ClassPlan, error) {
	var plan ClassPlan
	if err := s.db.First(&plan, "id = ? AND box_id = ?", classID, boxID).Error; err != nil {
		return nil, err
	}

	if in.Title != "" {
		plan.Title = in.Title
	}
	if !in.StartsAt.IsZero() {
		plan.StartsAt = in.StartsAt
	}
	if in.DurationMin > 0 {
		plan.DurationMin = in.DurationMin
	}
	if in.Capacity > 0 {
		plan.Capacity = in.Capacity
	}
	if in.Sections != nil {
		plan.Sections = datatypes.NewJSONType(in.Sections)
	}

	if err := s.db.Save(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}
	return &plan, nil
}

// ListRange returns the box's classes starting inside [from, to), in
// calendar order.
func (s *ClassService) ListRange(boxID uuid.UUID, from, to time.Time) ([]ClassPlan, error) {
	var plans []ClassPlan
	err := s.db.
		Where("box_id = ? AND starts_at >= ? AND starts_at < ?", boxID, from, to).
		Order("starts_at asc").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return plans, nil
}

func (s *ClassService) Get(boxID, classID uuid.UUID) (*ClassPlan, error) {
	var plan ClassPlan
	if err := s.db.First(&plan, "id = ? AND box_id = ?", classID, boxID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *ClassService) Delete(boxID, classID uuid.UUID) error {
	result := s.db.Delete(&ClassPlan{}, "id = ? AND box_id = ?", classID, boxID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete class: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
