package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles. Visitor is an invitation-only role variant and is
// persisted as a member-role membership with an expiry.
const (
	RoleAdmin  = "admin"
	RoleCoach  = "coach"
	RoleMember = "member"
)

// Membership is the (user, box, role) relation. The primary key is
// "{uid}_{boxID}" so at most one membership can exist per pair.
type Membership struct {
	ID        string     `gorm:"primaryKey;size:200" json:"id"`
	UserID    string     `gorm:"size:128;not null;index" json:"user_id"`
	BoxID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"box_id"`
	Role      string     `gorm:"size:20;not null;default:'member'" json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	JoinedAt  time.Time  `json:"joined_at"`
}

// MembershipID builds the composite primary key for a (user, box) pair.
func MembershipID(uid string, boxID uuid.UUID) string {
	return uid + "_" + boxID.String()
}
