package classes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Section is one block of a class plan (warm-up, strength, metcon).
type Section struct {
	Title    string `json:"title"`
	Kind     string `json:"kind"`
	Content  string `json:"content"`
	Duration int    `json:"duration_min,omitempty"`
}

// ClassPlan is a scheduled class with its programming.
type ClassPlan struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoxID       uuid.UUID                     `gorm:"type:uuid;not null;index:idx_class_box_start" json:"box_id"`
	Title       string                        `gorm:"size:255;not null" json:"title"`
	CoachUID    string                        `gorm:"size:128" json:"coach_uid"`
	StartsAt    time.Time                     `gorm:"not null;index:idx_class_box_start" json:"starts_at"`
	DurationMin int                           `gorm:"default:60" json:"duration_min"`
	Capacity    int                           `gorm:"default:0" json:"capacity"`
	Sections    datatypes.JSONType[[]Section] `gorm:"type:jsonb" json:"sections"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}
