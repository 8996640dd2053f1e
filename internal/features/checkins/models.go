package checkins

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn records attendance, at most one per member and class.
type CheckIn struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoxID       uuid.UUID `gorm:"type:uuid;not null;index" json:"box_id"`
	ClassID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_checkin_class_user" json:"class_id"`
	UserID      string    `gorm:"size:128;not null;uniqueIndex:idx_checkin_class_user" json:"user_id"`
	CheckedInAt time.Time `gorm:"not null" json:"checked_in_at"`
}
