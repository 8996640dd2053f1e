package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/identity"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/boxtrackhq/boxtrack-backend/internal/watch"
	"github.com/google/uuid"
)

// State is the bootstrap lifecycle:
// idle → authenticating → resolving-profile → resolving-memberships → ready,
// with signed-out as the re-entrant terminal state.
type State string

const (
	StateIdle                 State = "idle"
	StateAuthenticating       State = "authenticating"
	StateResolvingProfile     State = "resolving-profile"
	StateResolvingMemberships State = "resolving-memberships"
	StateReady                State = "ready"
	StateSignedOut            State = "signed-out"
)

func (s State) loading() bool {
	switch s {
	case StateAuthenticating, StateResolvingProfile, StateResolvingMemberships:
		return true
	}
	return false
}

// Snapshot is the consistent triple exposed to callers: identity, profile
// and the resolved box visibility, plus the lifecycle flags.
type Snapshot struct {
	State        State              `json:"state"`
	Loading      bool               `json:"loading"`
	Retrying     bool               `json:"retrying"`
	Identity     *identity.Identity `json:"identity,omitempty"`
	Stats        *models.UserStats  `json:"stats,omitempty"`
	Memberships  []models.Membership `json:"memberships"`
	VisibleBoxes []models.Box       `json:"visible_boxes"`
	ActiveBox    *models.Box        `json:"active_box,omitempty"`
}

// Session is the explicitly constructed session context for one identity.
// It owns its live membership subscription; Teardown releases it.
type Session struct {
	manager *Manager

	mu          sync.Mutex
	state       State
	retrying    bool
	ident       *identity.Identity
	stats       *models.UserStats
	memberships []models.Membership
	visible     []models.Box
	active      *models.Box

	sub       *watch.Subscription
	watchDone chan struct{}
	slowTimer *time.Timer
}

func (m *Manager) NewSession() *Session {
	return &Session{manager: m, state: StateIdle}
}

// BeginAuthentication marks the window between process start and the
// first identity notification from the provider.
func (s *Session) BeginAuthentication() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		s.state = StateAuthenticating
	}
}

// HandleIdentity drives the passive bootstrap from an identity change
// notification. A nil identity signs the session out and clears all
// derived state. Gate failures are returned; resolution failures are
// swallowed here (there is no interactive caller) and leave a degraded
// signed-in session with loading cleared.
func (s *Session) HandleIdentity(ctx context.Context, ident *identity.Identity) error {
	s.mu.Lock()
	if ident == nil {
		s.signOutLocked()
		s.mu.Unlock()
		return nil
	}

	// Re-entry for an already-ready identity refreshes silently: no
	// loading flicker, no repeated profile writes.
	if s.ident != nil && s.ident.UID == ident.UID && s.state == StateReady {
		s.mu.Unlock()
		s.refresh(ctx)
		return nil
	}

	// Identity changed mid-flight: the old subscription goes first.
	s.releaseSubscriptionLocked()
	s.ident = ident
	s.stats = nil
	s.memberships = nil
	s.visible = nil
	s.active = nil
	s.state = StateResolvingProfile
	s.retrying = false
	s.mu.Unlock()

	s.armSlowTimer()
	defer s.disarmSlowTimer()

	stats, err := s.manager.resolveProfile(ctx, ident)
	if err != nil {
		var mismatch *EmailMismatchError
		if errors.Is(err, ErrInvitationRequired) || errors.As(err, &mismatch) {
			s.mu.Lock()
			s.signOutLocked()
			s.mu.Unlock()
			return err
		}
		slog.Error("profile resolution failed", "uid", ident.UID, "error", err)
		s.mu.Lock()
		s.state = StateReady
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	if s.ident == nil || s.ident.UID != ident.UID {
		// Signed out or replaced while resolving; drop the result.
		s.mu.Unlock()
		return nil
	}
	// A concurrent bootstrap for the same identity may have installed a
	// subscription while this one was resolving; exactly one may live.
	s.releaseSubscriptionLocked()
	s.stats = stats
	s.state = StateResolvingMemberships
	sub := s.manager.feed.Subscribe(ident.UID)
	done := make(chan struct{})
	s.sub = sub
	s.watchDone = done
	s.mu.Unlock()

	// The initial resolution is the first emission: it latches the
	// session to ready. Later emissions update state without re-entering
	// a loading state.
	s.refresh(ctx)

	go s.watchLoop(sub, done)
	return nil
}

func (s *Session) watchLoop(sub *watch.Subscription, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-sub.C:
			s.refresh(context.Background())
		}
	}
}

// refresh re-resolves memberships and box visibility. Failures degrade:
// they are logged and clear loading rather than hanging the session.
func (s *Session) refresh(ctx context.Context) {
	s.mu.Lock()
	ident := s.ident
	stats := s.stats
	s.mu.Unlock()
	if ident == nil {
		return
	}

	memberships, err := s.manager.members.ForUser(ctx, ident.UID)
	if err != nil {
		slog.Error("membership resolution failed", "uid", ident.UID, "error", err)
		s.degrade()
		return
	}

	res, err := s.manager.resolver.Resolve(ctx, ident.UID, memberships, stats)
	if err != nil {
		slog.Error("box resolution failed", "uid", ident.UID, "error", err)
		s.degrade()
		return
	}

	s.mu.Lock()
	if s.ident == nil || s.ident.UID != ident.UID {
		s.mu.Unlock()
		return
	}
	s.memberships = memberships
	s.visible = res.Visible
	s.active = res.Active
	s.state = StateReady
	s.retrying = false
	s.mu.Unlock()
}

func (s *Session) degrade() {
	s.mu.Lock()
	if s.state.loading() {
		s.state = StateReady
	}
	s.retrying = false
	s.mu.Unlock()
}

// SetActiveBox switches the active box: in-memory immediately, persisted
// to the profile so the choice survives the next bootstrap. It never
// touches the membership subscription. Non-super-admin identities may only
// select a visible box; the super administrator may select any box.
func (s *Session) SetActiveBox(ctx context.Context, boxID uuid.UUID) error {
	s.mu.Lock()
	ident := s.ident
	var target *models.Box
	for i := range s.visible {
		if s.visible[i].ID == boxID {
			b := s.visible[i]
			target = &b
			break
		}
	}
	s.mu.Unlock()

	if ident == nil {
		return ErrNotSignedIn
	}
	if target == nil {
		if !s.manager.IsSuperAdministrator(ident.UID) {
			return ErrBoxNotVisible
		}
		box, err := s.manager.resolver.boxes.Get(ctx, boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return ErrBoxNotVisible
		}
		target = box
	}

	s.mu.Lock()
	s.active = target
	if s.stats != nil {
		id := boxID
		s.stats.CurrentBoxID = &id
	}
	s.mu.Unlock()

	return s.manager.stats.SetCurrentBox(ctx, ident.UID, &boxID)
}

// SignOut clears all derived state and releases the subscription.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signOutLocked()
}

// Teardown releases the session's resources. Equivalent to SignOut; named
// separately so owners release sessions explicitly at end of life.
func (s *Session) Teardown() {
	s.SignOut()
}

func (s *Session) signOutLocked() {
	s.releaseSubscriptionLocked()
	s.ident = nil
	s.stats = nil
	s.memberships = nil
	s.visible = nil
	s.active = nil
	s.retrying = false
	s.state = StateSignedOut
}

func (s *Session) releaseSubscriptionLocked() {
	if s.sub != nil {
		s.sub.Close()
		close(s.watchDone)
		s.sub = nil
		s.watchDone = nil
	}
}

func (s *Session) armSlowTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slowTimer != nil {
		s.slowTimer.Stop()
	}
	s.slowTimer = time.AfterFunc(s.manager.slowAfter, func() {
		s.mu.Lock()
		if s.state.loading() {
			s.retrying = true
		}
		s.mu.Unlock()
	})
}

func (s *Session) disarmSlowTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slowTimer != nil {
		s.slowTimer.Stop()
		s.slowTimer = nil
	}
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:        s.state,
		Loading:      s.state.loading(),
		Retrying:     s.retrying,
		Identity:     s.ident,
		Stats:        s.stats,
		Memberships:  append([]models.Membership(nil), s.memberships...),
		VisibleBoxes: append([]models.Box(nil), s.visible...),
	}
	if s.active != nil {
		b := *s.active
		snap.ActiveBox = &b
	}
	return snap
}

// UID returns the signed-in identity's uid, or "".
func (s *Session) UID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ident == nil {
		return ""
	}
	return s.ident.UID
}
