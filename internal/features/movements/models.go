package movements

import (
	"time"
)

// Score types decide how personal records compare: lower is better for
// time, higher for everything else.
const (
	ScoreTypeWeight = "weight"
	ScoreTypeTime   = "time"
	ScoreTypeReps   = "reps"
)

// Movement is one catalog entry, keyed by slug ("back-squat").
type Movement struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Category  string    `gorm:"size:32" json:"category"`
	ScoreType string    `gorm:"size:16;not null;default:'weight'" json:"score_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
