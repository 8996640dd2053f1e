package whiteboard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ScanStatusDone   = "done"
	ScanStatusFailed = "failed"
)

// ScanResult is the structured reading of one whiteboard photo.
type ScanResult struct {
	WorkoutTitle string      `json:"workout_title"`
	Entries      []ScanEntry `json:"entries"`
}

type ScanEntry struct {
	Athlete  string  `json:"athlete"`
	Movement string  `json:"movement,omitempty"`
	Score    float64 `json:"score"`
	Unit     string  `json:"unit,omitempty"`
	Rx       bool    `json:"rx"`
}

// Scan is one analyzed whiteboard photo.
type Scan struct {
	ID        uuid.UUID                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoxID     uuid.UUID                      `gorm:"type:uuid;not null;index" json:"box_id"`
	UserID    string                         `gorm:"size:128;not null;index" json:"user_id"`
	ImageURL  string                         `gorm:"size:512" json:"image_url"`
	Status    string                         `gorm:"size:16;not null;default:'done'" json:"status"`
	Result    datatypes.JSONType[ScanResult] `gorm:"type:jsonb" json:"result"`
	CreatedAt time.Time                      `json:"created_at"`
}
