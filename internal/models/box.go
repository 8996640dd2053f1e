package models

import (
	"time"

	"github.com/google/uuid"
)

// Box is a gym/affiliate, the multi-tenancy boundary for classes, scores
// and memberships. Deleting a box does not cascade to dependent records;
// dangling memberships are tolerated and skipped at resolution time.
type Box struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerUID  string    `gorm:"size:128;not null;index" json:"owner_uid"`
	Address   string    `gorm:"size:512" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
