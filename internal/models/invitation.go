package models

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	InviteStatusPending = "pending"
	InviteStatusUsed    = "used"
	InviteStatusExpired = "expired"

	// RoleVisitor is only ever carried on an invitation; acceptance
	// produces a member-role membership with an expiry.
	RoleVisitor = "visitor"
)

// Invitation is a single-use, time-boxed authorization gating new
// email-based sign-up. The one-time token is split into a lookup id and a
// secret; only a bcrypt hash of the secret is stored.
type Invitation struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email                string    `gorm:"size:255;not null;index" json:"email"`
	BoxID                uuid.UUID `gorm:"type:uuid;not null;index" json:"box_id"`
	Role                 string    `gorm:"size:20;not null;default:'member'" json:"role"`
	TokenID              string    `gorm:"size:36;uniqueIndex" json:"-"`
	TokenHash            string    `gorm:"size:100" json:"-"`
	Status               string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	InvitedBy            string    `gorm:"size:128" json:"invited_by"`
	VisitorExpiresInDays *int      `json:"visitor_expires_in_days,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	ExpiresAt            time.Time `json:"expires_at"`
}

// NewInvitationToken mints a one-time token of the form "<id>.<secret>".
// The raw token goes out in the invite mail; only id + bcrypt(secret) are
// persisted.
func NewInvitationToken() (raw, tokenID, secretHash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)
	tokenID = uuid.New().String()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to hash token secret: %w", err)
	}
	return tokenID + "." + secret, tokenID, string(hash), nil
}

// ParseInvitationToken splits a raw token into its lookup id and secret.
func ParseInvitationToken(raw string) (tokenID, secret string, ok bool) {
	tokenID, secret, ok = strings.Cut(raw, ".")
	if !ok || tokenID == "" || secret == "" {
		return "", "", false
	}
	return tokenID, secret, true
}

// MatchesSecret reports whether the given token secret matches the stored hash.
func (i *Invitation) MatchesSecret(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(i.TokenHash), []byte(secret)) == nil
}

// IsExpired reports whether the invitation has passed its expiry.
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
