package movements

import (
	"gorm.io/gorm"
)

type MovementService struct {
	db *gorm.DB
}

func NewMovementService(db *gorm.DB) *MovementService {
	return &MovementService{db: db}
}

func (s *MovementService) List() ([]Movement, error) {
	var catalog []Movement
	if err := s.db.Order("name asc").Find(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *MovementService) Get(id string) (*Movement, error) {
	var m Movement
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
