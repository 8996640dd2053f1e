package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores a sha256 hash of an issued refresh token. Tokens are
// rotated on use and revoked on logout or account deletion.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"size:128;not null;index" json:"user_id"`
	TokenHash string    `gorm:"size:64;not null;index" json:"-"`
	Revoked   bool      `gorm:"default:false" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
