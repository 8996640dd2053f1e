package scores

import (
	"time"

	"github.com/google/uuid"
)

// Score is one logged result for a movement, optionally tied to a class.
type Score struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoxID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_score_box_user" json:"box_id"`
	UserID     string     `gorm:"size:128;not null;index:idx_score_box_user" json:"user_id"`
	ClassID    *uuid.UUID `gorm:"type:uuid;index" json:"class_id,omitempty"`
	MovementID string     `gorm:"size:64;not null;index" json:"movement_id"`
	ScoreType  string     `gorm:"size:16;not null" json:"score_type"`
	Value      float64    `gorm:"not null" json:"value"`
	Rx         bool       `gorm:"default:false" json:"rx"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt time.Time  `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
