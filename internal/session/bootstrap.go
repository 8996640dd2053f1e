package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/identity"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"gorm.io/datatypes"
)

// Manager orchestrates the identity provider, the stores and the two
// resolvers into the session bootstrap. It is shared; each signed-in
// identity gets its own Session.
type Manager struct {
	provider identity.Provider
	stats    UserStatsStore
	members  MembershipStore
	feed     MembershipFeed
	invites  *InviteResolver
	resolver *BoxResolver

	slowAfter time.Duration
}

type ManagerOptions struct {
	Provider      identity.Provider
	Stats         UserStatsStore
	Boxes         BoxStore
	Members       MembershipStore
	Invitations   InvitationStore
	Feed          MembershipFeed
	SuperAdminUID string

	// SlowAfter is how long a bootstrap may run before the session reports
	// a retrying status. Zero means the 15 second default.
	SlowAfter time.Duration
}

func NewManager(opts ManagerOptions) *Manager {
	slowAfter := opts.SlowAfter
	if slowAfter <= 0 {
		slowAfter = 15 * time.Second
	}
	return &Manager{
		provider:  opts.Provider,
		stats:     opts.Stats,
		members:   opts.Members,
		feed:      opts.Feed,
		invites:   NewInviteResolver(opts.Invitations, opts.Members),
		resolver:  NewBoxResolver(opts.Boxes, opts.SuperAdminUID),
		slowAfter: slowAfter,
	}
}

// Invitations exposes the invitation resolver for callers outside the
// bootstrap (invite-link resolution, admin surfaces).
func (m *Manager) Invitations() *InviteResolver { return m.invites }

// IsSuperAdministrator reports whether uid is the hard-coded super
// administrator.
func (m *Manager) IsSuperAdministrator(uid string) bool {
	return m.resolver.IsSuperAdministrator(uid)
}

// SignIn is the interactive sign-in gate, run eagerly after the provider
// confirms a session and before the passive bootstrap takes over. A
// caller-supplied one-time invite token is checked first; email-based
// pending invitations second. Gate failures delete the identity at the
// provider so no residual session remains.
func (m *Manager) SignIn(ctx context.Context, ident *identity.Identity, inviteToken string) error {
	matched := false

	if inviteToken != "" {
		inv, err := m.invites.FindByToken(ctx, inviteToken)
		if err != nil {
			return err
		}
		if inv != nil {
			if !strings.EqualFold(inv.Email, ident.Email) {
				return m.reject(ctx, ident.UID, &EmailMismatchError{Expected: inv.Email, Actual: ident.Email})
			}
			matched = true
		}
	}

	if !matched && !ident.IsAnonymous() {
		inv, err := m.invites.FindPendingByEmail(ctx, ident.Email)
		if err != nil {
			return err
		}
		matched = inv != nil
	}

	stats, err := m.stats.Get(ctx, ident.UID)
	if err != nil {
		return fmt.Errorf("profile lookup failed: %w", err)
	}

	if stats == nil && !matched && !ident.IsAnonymous() {
		return m.reject(ctx, ident.UID, ErrInvitationRequired)
	}

	if matched {
		if _, err := m.invites.AcceptAllPending(ctx, ident.UID, ident.Email); err != nil {
			return err
		}
	}

	if stats == nil {
		if err := m.stats.Save(ctx, m.newStats(ident)); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
	}
	return nil
}

// resolveProfile is step three of the passive bootstrap: adopt an existing
// profile, synthesize one for anonymous identities, or run the invitation
// gate for new email identities.
func (m *Manager) resolveProfile(ctx context.Context, ident *identity.Identity) (*models.UserStats, error) {
	stats, err := m.stats.Get(ctx, ident.UID)
	if err != nil {
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}
	if stats != nil {
		return stats, nil
	}

	if ident.IsAnonymous() {
		stats = m.newStats(ident)
		if err := m.stats.Save(ctx, stats); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return stats, nil
	}

	inv, err := m.invites.FindPendingByEmail(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, m.reject(ctx, ident.UID, ErrInvitationRequired)
	}

	if _, err := m.invites.AcceptAllPending(ctx, ident.UID, ident.Email); err != nil {
		return nil, err
	}

	stats = m.newStats(ident)
	if err := m.stats.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return stats, nil
}

// reject deletes the identity at the provider and returns the gate error.
// Deletion failure is logged but does not mask the gate error; the caller
// still signs out.
func (m *Manager) reject(ctx context.Context, uid string, cause error) error {
	if err := m.provider.DeleteIdentity(ctx, uid); err != nil {
		slog.Error("failed to delete rejected identity", "uid", uid, "error", err)
	}
	return cause
}

func (m *Manager) newStats(ident *identity.Identity) *models.UserStats {
	return &models.UserStats{
		UID:         ident.UID,
		Role:        models.RoleMember,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
		PhotoURL:    ident.PhotoURL,
		MaxWeights:  datatypes.NewJSONType(models.MaxWeights{}),
		CreatedAt:   time.Now(),
	}
}
