package session

import (
	"context"

	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/boxtrackhq/boxtrack-backend/internal/watch"
	"github.com/google/uuid"
)

// Store contracts consumed by the session bootstrap. Absent documents are
// reported as (nil, nil) so callers never re-derive defaults inline; the
// store implementations own the decode-with-defaults boundary.

type UserStatsStore interface {
	Get(ctx context.Context, uid string) (*models.UserStats, error)
	Save(ctx context.Context, stats *models.UserStats) error
	SetCurrentBox(ctx context.Context, uid string, boxID *uuid.UUID) error
}

type BoxStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Box, error)
	// All returns every box in a stable order (creation order).
	All(ctx context.Context) ([]models.Box, error)
}

type MembershipStore interface {
	ForUser(ctx context.Context, uid string) ([]models.Membership, error)
	// Create is conflict-tolerant: a membership that already exists for the
	// same (user, box) pair is left untouched.
	Create(ctx context.Context, m *models.Membership) error
}

type InvitationStore interface {
	// PendingByEmail returns pending invitations for the email, oldest first.
	PendingByEmail(ctx context.Context, email string) ([]models.Invitation, error)
	// PendingByTokenID resolves a token id to its invitation only while the
	// invitation is still pending.
	PendingByTokenID(ctx context.Context, tokenID string) (*models.Invitation, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// MembershipFeed delivers live membership-change notifications per user.
type MembershipFeed interface {
	Subscribe(uid string) *watch.Subscription
}
