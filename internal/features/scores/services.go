package scores

import (
	"errors"
	"fmt"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/features/movements"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrUnknownMovement = errors.New("unknown movement")

type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

type ScoreInput struct {
	MovementID string     `json:"movement_id"`
	ClassID    *uuid.UUID `json:"class_id,omitempty"`
	Value      float64    `json:"value"`
	Rx         bool       `json:"rx"`
	Notes      string     `json:"notes"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// Record logs a score. The score type is stamped from the movement
// catalog, never trusted from the client. A new lift maximum also lands
// on the member's profile.
func (s *ScoreService) Record(boxID uuid.UUID, uid string, in *ScoreInput) (*Score, error) {
	if in.Value <= 0 {
		return nil, errors.New("score value must be positive")
	}

	var movement movements.Movement
	if err := s.db.First(&movement, "id = ?", in.MovementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownMovement
		}
		return nil, fmt.Errorf("failed to look up movement: %w", err)
	}

	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	score := Score{
		ID:         uuid.New(),
		BoxID:      boxID,
		UserID:     uid,
		ClassID:    in.ClassID,
		MovementID: movement.ID,
		ScoreType:  movement.ScoreType,
		Value:      in.Value,
		Rx:         in.Rx,
		Notes:      in.Notes,
		RecordedAt: recordedAt,
	}
	if err := s.db.Create(&score).Error; err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	s.maybeUpdateMaxWeight(uid, movement.ID, in.Value)
	return &score, nil
}

// liftFields maps the four tracked lifts onto profile max-weight fields.
var liftFields = map[string]func(*models.MaxWeights) *float64{
	"back-squat": func(m *models.MaxWeights) *float64 { return &m.BackSquat },
	"deadlift":   func(m *models.MaxWeights) *float64 { return &m.Deadlift },
	"clean":      func(m *models.MaxWeights) *float64 { return &m.Clean },
	"snatch":     func(m *models.MaxWeights) *float64 { return &m.Snatch },
}

func (s *ScoreService) maybeUpdateMaxWeight(uid, movementID string, value float64) {
	field, ok := liftFields[movementID]
	if !ok {
		return
	}

	var stats models.UserStats
	if err := s.db.First(&stats, "uid = ?", uid).Error; err != nil {
		return
	}

	weights := stats.MaxWeights.Data()
	slot := field(&weights)
	if value <= *slot {
		return
	}
	*slot = value
	s.db.Model(&stats).Update("max_weights", datatypes.NewJSONType(weights))
}

// History returns the member's scores for one movement, newest first.
func (s *ScoreService) History(boxID uuid.UUID, uid, movementID string) ([]Score, error) {
	var list []Score
	err := s.db.
		Where("box_id = ? AND user_id = ? AND movement_id = ?", boxID, uid, movementID).
		Order("recorded_at desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return list, nil
}

// PersonalRecord returns the member's best score for a movement, nil when
// nothing has been logged yet.
func (s *ScoreService) PersonalRecord(boxID uuid.UUID, uid, movementID string) (*Score, error) {
	list, err := s.History(boxID, uid, movementID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	best := list[0]
	for _, candidate := range list[1:] {
		if IsBetter(candidate.ScoreType, candidate.Value, best.Value) {
			best = candidate
		}
	}
	return &best, nil
}

// IsBetter reports whether candidate beats incumbent for the given score
// type. Time scores compare low, everything else compares high. Ties are
// not improvements.
func IsBetter(scoreType string, candidate, incumbent float64) bool {
	if scoreType == movements.ScoreTypeTime {
		return candidate < incumbent
	}
	return candidate > incumbent
}
