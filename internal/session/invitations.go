package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/models"
)

// Visitor memberships expire after this many days unless the invitation
// carries its own window.
const defaultVisitorDays = 7

// InviteResolver answers invitation lookups for the sign-up gate and turns
// accepted invitations into memberships.
type InviteResolver struct {
	invites InvitationStore
	members MembershipStore
}

func NewInviteResolver(invites InvitationStore, members MembershipStore) *InviteResolver {
	return &InviteResolver{invites: invites, members: members}
}

// FindPendingByEmail returns the oldest live pending invitation for the
// email, or nil. A user invited to several boxes still matches here; all
// of their invitations are consumed by AcceptAllPending.
func (r *InviteResolver) FindPendingByEmail(ctx context.Context, email string) (*models.Invitation, error) {
	if email == "" {
		return nil, nil
	}
	pending, err := r.invites.PendingByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("pending invitation lookup failed: %w", err)
	}
	for i := range pending {
		if !pending[i].IsExpired() {
			return &pending[i], nil
		}
	}
	return nil, nil
}

// FindByToken resolves a raw one-time token. Used, expired or unknown
// tokens resolve to nil; so does a token whose secret does not match the
// stored hash.
func (r *InviteResolver) FindByToken(ctx context.Context, raw string) (*models.Invitation, error) {
	tokenID, secret, ok := models.ParseInvitationToken(raw)
	if !ok {
		return nil, nil
	}
	inv, err := r.invites.PendingByTokenID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("invite token lookup failed: %w", err)
	}
	if inv == nil || inv.IsExpired() || !inv.MatchesSecret(secret) {
		return nil, nil
	}
	return inv, nil
}

// AcceptAllPending consumes every live pending invitation for the email in
// one pass: one membership write per invitation, each flipped to used.
// Writes are best-effort and per-invitation; a failed write is logged and
// leaves earlier acceptances committed.
func (r *InviteResolver) AcceptAllPending(ctx context.Context, uid, email string) ([]models.Membership, error) {
	pending, err := r.invites.PendingByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("pending invitation lookup failed: %w", err)
	}

	accepted := make([]models.Membership, 0, len(pending))
	for i := range pending {
		inv := &pending[i]
		if inv.IsExpired() {
			continue
		}

		m := models.Membership{
			ID:       models.MembershipID(uid, inv.BoxID),
			UserID:   uid,
			BoxID:    inv.BoxID,
			Role:     inv.Role,
			JoinedAt: time.Now(),
		}
		if inv.Role == models.RoleVisitor {
			days := defaultVisitorDays
			if inv.VisitorExpiresInDays != nil {
				days = *inv.VisitorExpiresInDays
			}
			expires := time.Now().AddDate(0, 0, days)
			m.Role = models.RoleMember
			m.ExpiresAt = &expires
		}

		if err := r.members.Create(ctx, &m); err != nil {
			slog.Error("invitation acceptance failed", "uid", uid, "box_id", inv.BoxID.String(), "error", err)
			continue
		}
		if err := r.invites.MarkUsed(ctx, inv.ID); err != nil {
			slog.Error("failed to mark invitation used", "invitation_id", inv.ID.String(), "error", err)
		}
		accepted = append(accepted, m)
	}
	return accepted, nil
}
