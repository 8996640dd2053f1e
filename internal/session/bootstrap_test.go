package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/identity"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/boxtrackhq/boxtrack-backend/internal/watch"
	"github.com/google/uuid"
)

type fakeProvider struct {
	mu      sync.Mutex
	deleted []string
}

func (p *fakeProvider) Verify(ctx context.Context, idToken string) (*identity.Identity, error) {
	return nil, errors.New("not used")
}

func (p *fakeProvider) DeleteIdentity(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, uid)
	return nil
}

func (p *fakeProvider) deletedUIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.deleted...)
}

type fakeStats struct {
	mu    sync.Mutex
	docs  map[string]models.UserStats
	saves int
	err   error
	gate  func()
}

func newFakeStats() *fakeStats {
	return &fakeStats{docs: make(map[string]models.UserStats)}
}

func (s *fakeStats) Get(ctx context.Context, uid string) (*models.UserStats, error) {
	if s.gate != nil {
		s.gate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	doc, ok := s.docs[uid]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (s *fakeStats) Save(ctx context.Context, stats *models.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.docs[stats.UID] = *stats
	return nil
}

func (s *fakeStats) SetCurrentBox(ctx context.Context, uid string, boxID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[uid]
	doc.UID = uid
	doc.CurrentBoxID = boxID
	s.docs[uid] = doc
	return nil
}

func (s *fakeStats) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type fakeBoxes struct {
	mu    sync.Mutex
	boxes []models.Box
	err   error
}

func (b *fakeBoxes) Get(ctx context.Context, id uuid.UUID) (*models.Box, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	for i := range b.boxes {
		if b.boxes[i].ID == id {
			box := b.boxes[i]
			return &box, nil
		}
	}
	return nil, nil
}

func (b *fakeBoxes) All(ctx context.Context) ([]models.Box, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return append([]models.Box(nil), b.boxes...), nil
}

type fakeMembers struct {
	mu           sync.Mutex
	byUser       map[string][]models.Membership
	createErr    map[uuid.UUID]error
	forUserErr   error
	forUserCalls int
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{byUser: make(map[string][]models.Membership)}
}

func (m *fakeMembers) ForUser(ctx context.Context, uid string) ([]models.Membership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forUserCalls++
	if m.forUserErr != nil {
		return nil, m.forUserErr
	}
	return append([]models.Membership(nil), m.byUser[uid]...), nil
}

func (m *fakeMembers) Create(ctx context.Context, membership *models.Membership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.createErr[membership.BoxID]; ok {
		return err
	}
	for _, existing := range m.byUser[membership.UserID] {
		if existing.ID == membership.ID {
			return nil
		}
	}
	m.byUser[membership.UserID] = append(m.byUser[membership.UserID], *membership)
	return nil
}

func (m *fakeMembers) forUserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forUserCalls
}

func (m *fakeMembers) membershipCount(uid string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUser[uid])
}

func (m *fakeMembers) add(membership models.Membership) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[membership.UserID] = append(m.byUser[membership.UserID], membership)
}

type fakeInvites struct {
	mu      sync.Mutex
	pending []models.Invitation
	used    []uuid.UUID
}

func (f *fakeInvites) PendingByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invitation
	for _, inv := range f.pending {
		if inv.Status == models.InviteStatusPending && equalFold(inv.Email, email) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvites) PendingByTokenID(ctx context.Context, tokenID string) (*models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.pending {
		if inv.Status == models.InviteStatusPending && inv.TokenID == tokenID {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeInvites) MarkUsed(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.used = append(f.used, id)
	for i := range f.pending {
		if f.pending[i].ID == id {
			f.pending[i].Status = models.InviteStatusUsed
		}
	}
	return nil
}

func (f *fakeInvites) usedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.used)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

type fixture struct {
	provider *fakeProvider
	stats    *fakeStats
	boxes    *fakeBoxes
	members  *fakeMembers
	invites  *fakeInvites
	hub      *watch.Hub
	manager  *Manager
}

func newFixture(superAdmin string) *fixture {
	f := &fixture{
		provider: &fakeProvider{},
		stats:    newFakeStats(),
		boxes:    &fakeBoxes{},
		members:  newFakeMembers(),
		invites:  &fakeInvites{},
		hub:      watch.NewHub(),
	}
	f.manager = NewManager(ManagerOptions{
		Provider:      f.provider,
		Stats:         f.stats,
		Boxes:         f.boxes,
		Members:       f.members,
		Invitations:   f.invites,
		Feed:          f.hub,
		SuperAdminUID: superAdmin,
		SlowAfter:     50 * time.Millisecond,
	})
	return f
}

func (f *fixture) addBox(name string) models.Box {
	box := models.Box{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.boxes.mu.Lock()
	f.boxes.boxes = append(f.boxes.boxes, box)
	f.boxes.mu.Unlock()
	return box
}

func (f *fixture) addInvitation(email string, boxID uuid.UUID, role string) models.Invitation {
	inv := models.Invitation{
		ID:        uuid.New(),
		Email:     email,
		BoxID:     boxID,
		Role:      role,
		Status:    models.InviteStatusPending,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	f.invites.mu.Lock()
	f.invites.pending = append(f.invites.pending, inv)
	f.invites.mu.Unlock()
	return inv
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSignInWithoutInvitationDeletesIdentity(t *testing.T) {
	f := newFixture("")
	ident := &identity.Identity{UID: "u1", Email: "new@example.com"}

	err := f.manager.SignIn(context.Background(), ident, "")
	if !errors.Is(err, ErrInvitationRequired) {
		t.Fatalf("expected ErrInvitationRequired, got %v", err)
	}

	deleted := f.provider.deletedUIDs()
	if len(deleted) != 1 || deleted[0] != "u1" {
		t.Fatalf("expected identity u1 deleted at provider, got %v", deleted)
	}
	if f.stats.saveCount() != 0 {
		t.Fatalf("no profile should be created for a rejected sign-up")
	}
}

func TestSignInExistingProfileNeedsNoInvitation(t *testing.T) {
	f := newFixture("")
	f.stats.docs["u1"] = models.UserStats{UID: "u1", Email: "old@example.com", Role: models.RoleMember}

	err := f.manager.SignIn(context.Background(), &identity.Identity{UID: "u1", Email: "old@example.com"}, "")
	if err != nil {
		t.Fatalf("existing user sign-in failed: %v", err)
	}
	if len(f.provider.deletedUIDs()) != 0 {
		t.Fatalf("existing identity must not be deleted")
	}
}

func TestSignInTokenEmailMismatch(t *testing.T) {
	f := newFixture("")
	box := f.addBox("Iron Temple")

	raw, tokenID, hash, err := models.NewInvitationToken()
	if err != nil {
		t.Fatal(err)
	}
	f.addInvitation("invited@example.com", box.ID, models.RoleMember)
	f.invites.mu.Lock()
	f.invites.pending[0].TokenID = tokenID
	f.invites.pending[0].TokenHash = hash
	f.invites.mu.Unlock()

	err = f.manager.SignIn(context.Background(), &identity.Identity{UID: "u2", Email: "other@example.com"}, raw)

	var mismatch *EmailMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected EmailMismatchError, got %v", err)
	}
	if mismatch.Expected != "invited@example.com" || mismatch.Actual != "other@example.com" {
		t.Fatalf("mismatch should name both addresses, got %+v", mismatch)
	}
	deleted := f.provider.deletedUIDs()
	if len(deleted) != 1 || deleted[0] != "u2" {
		t.Fatalf("mismatched identity must be deleted, got %v", deleted)
	}
	if n := f.members.membershipCount("u2"); n != 0 {
		t.Fatalf("rejection must happen before any membership write, got %d", n)
	}
	if f.invites.usedCount() != 0 {
		t.Fatalf("a mismatched token must leave the invitation pending, got %d used", f.invites.usedCount())
	}
}

func TestSignInAcceptsAllPendingInvitations(t *testing.T) {
	f := newFixture("")
	box1 := f.addBox("Box One")
	box2 := f.addBox("Box Two")
	f.addInvitation("multi@example.com", box1.ID, models.RoleMember)
	f.addInvitation("multi@example.com", box2.ID, models.RoleCoach)

	ident := &identity.Identity{UID: "u3", Email: "multi@example.com"}
	if err := f.manager.SignIn(context.Background(), ident, ""); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	memberships, _ := f.members.ForUser(context.Background(), "u3")
	if len(memberships) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(memberships))
	}
	if f.invites.usedCount() != 2 {
		t.Fatalf("expected both invitations marked used, got %d", f.invites.usedCount())
	}

	stats, _ := f.stats.Get(context.Background(), "u3")
	if stats == nil {
		t.Fatal("profile should be created after acceptance")
	}
}

func TestVisitorInvitationGrantsExpiringMembership(t *testing.T) {
	f := newFixture("")
	box := f.addBox("Drop-in Box")
	days := 3
	f.invites.mu.Lock()
	f.invites.pending = append(f.invites.pending, models.Invitation{
		ID:                   uuid.New(),
		Email:                "visitor@example.com",
		BoxID:                box.ID,
		Role:                 models.RoleVisitor,
		Status:               models.InviteStatusPending,
		VisitorExpiresInDays: &days,
		CreatedAt:            time.Now(),
		ExpiresAt:            time.Now().Add(24 * time.Hour),
	})
	f.invites.mu.Unlock()

	if err := f.manager.SignIn(context.Background(), &identity.Identity{UID: "u4", Email: "visitor@example.com"}, ""); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	memberships, _ := f.members.ForUser(context.Background(), "u4")
	if len(memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(memberships))
	}
	m := memberships[0]
	if m.Role != models.RoleMember {
		t.Fatalf("visitor invitations produce member-role memberships, got %q", m.Role)
	}
	if m.ExpiresAt == nil {
		t.Fatal("visitor membership must carry an expiry")
	}
	expected := time.Now().AddDate(0, 0, days)
	if m.ExpiresAt.Before(expected.Add(-time.Hour)) || m.ExpiresAt.After(expected.Add(time.Hour)) {
		t.Fatalf("expiry %v not within expected window around %v", m.ExpiresAt, expected)
	}
}

func TestAcceptAllPendingPartialFailure(t *testing.T) {
	f := newFixture("")
	box1 := f.addBox("Healthy")
	box2 := f.addBox("Broken")
	f.addInvitation("partial@example.com", box1.ID, models.RoleMember)
	f.addInvitation("partial@example.com", box2.ID, models.RoleMember)
	f.members.createErr = map[uuid.UUID]error{box2.ID: errors.New("write failed")}

	accepted, err := f.manager.Invitations().AcceptAllPending(context.Background(), "u5", "partial@example.com")
	if err != nil {
		t.Fatalf("partial failure must not fail the pass: %v", err)
	}
	if len(accepted) != 1 || accepted[0].BoxID != box1.ID {
		t.Fatalf("expected only the healthy box accepted, got %+v", accepted)
	}
	if f.invites.usedCount() != 1 {
		t.Fatalf("only the accepted invitation may be marked used, got %d", f.invites.usedCount())
	}
}

func TestHandleIdentityBootstrapsToReady(t *testing.T) {
	f := newFixture("")
	box := f.addBox("Home Box")
	f.stats.docs["u6"] = models.UserStats{UID: "u6", Email: "m@example.com", Role: models.RoleMember}
	f.members.add(models.Membership{
		ID: models.MembershipID("u6", box.ID), UserID: "u6", BoxID: box.ID, Role: models.RoleMember,
	})

	sess := f.manager.NewSession()
	sess.BeginAuthentication()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "u6", Email: "m@example.com"}); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer sess.Teardown()

	snap := sess.Snapshot()
	if snap.State != StateReady {
		t.Fatalf("expected ready, got %s", snap.State)
	}
	if snap.Loading {
		t.Fatal("loading must be cleared once ready")
	}
	if len(snap.Memberships) != 1 || len(snap.VisibleBoxes) != 1 {
		t.Fatalf("expected one membership and one visible box, got %d/%d", len(snap.Memberships), len(snap.VisibleBoxes))
	}
	if snap.ActiveBox == nil || snap.ActiveBox.ID != box.ID {
		t.Fatalf("active box should default to the membership box")
	}
}

func TestHandleIdentityAnonymousCreatesProfile(t *testing.T) {
	f := newFixture("")

	sess := f.manager.NewSession()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "anon1"}); err != nil {
		t.Fatalf("anonymous bootstrap failed: %v", err)
	}
	defer sess.Teardown()

	snap := sess.Snapshot()
	if snap.State != StateReady {
		t.Fatalf("expected ready, got %s", snap.State)
	}
	if snap.Stats == nil || snap.Stats.UID != "anon1" {
		t.Fatal("anonymous identity should get a synthesized profile")
	}
	if len(f.provider.deletedUIDs()) != 0 {
		t.Fatal("anonymous identities bypass the invitation gate")
	}
}

func TestHandleIdentityRejectsUninvitedEmail(t *testing.T) {
	f := newFixture("")

	sess := f.manager.NewSession()
	err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "u7", Email: "stranger@example.com"})
	if !errors.Is(err, ErrInvitationRequired) {
		t.Fatalf("expected ErrInvitationRequired, got %v", err)
	}

	snap := sess.Snapshot()
	if snap.State != StateSignedOut {
		t.Fatalf("rejected session must be signed out, got %s", snap.State)
	}
	if len(f.provider.deletedUIDs()) != 1 {
		t.Fatal("rejected identity must be deleted at the provider")
	}
}

func TestHandleIdentityReentryDoesNotDuplicateWrites(t *testing.T) {
	f := newFixture("")
	f.stats.docs["u8"] = models.UserStats{UID: "u8", Email: "r@example.com", Role: models.RoleMember}

	sess := f.manager.NewSession()
	ident := &identity.Identity{UID: "u8", Email: "r@example.com"}
	if err := sess.HandleIdentity(context.Background(), ident); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer sess.Teardown()

	saves := f.stats.saveCount()
	if err := sess.HandleIdentity(context.Background(), ident); err != nil {
		t.Fatalf("re-entry failed: %v", err)
	}

	snap := sess.Snapshot()
	if snap.State != StateReady || snap.Loading {
		t.Fatalf("re-entry must stay ready without loading flicker, got %s", snap.State)
	}
	if f.stats.saveCount() != saves {
		t.Fatalf("re-entry must not repeat profile writes: %d -> %d", saves, f.stats.saveCount())
	}
}

func TestHandleIdentityNilSignsOut(t *testing.T) {
	f := newFixture("")
	f.stats.docs["u9"] = models.UserStats{UID: "u9", Role: models.RoleMember}

	sess := f.manager.NewSession()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "u9", Email: ""}); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := sess.HandleIdentity(context.Background(), nil); err != nil {
		t.Fatalf("sign-out failed: %v", err)
	}

	snap := sess.Snapshot()
	if snap.State != StateSignedOut {
		t.Fatalf("expected signed-out, got %s", snap.State)
	}
	if snap.Identity != nil || snap.Stats != nil || len(snap.Memberships) != 0 || snap.ActiveBox != nil {
		t.Fatal("sign-out must clear all derived state")
	}
}

func TestMembershipFeedRefreshesReadySession(t *testing.T) {
	f := newFixture("")
	box1 := f.addBox("First")
	box2 := f.addBox("Second")
	f.stats.docs["u10"] = models.UserStats{UID: "u10", Role: models.RoleMember}
	f.members.add(models.Membership{
		ID: models.MembershipID("u10", box1.ID), UserID: "u10", BoxID: box1.ID, Role: models.RoleMember,
	})

	sess := f.manager.NewSession()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "u10"}); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer sess.Teardown()

	f.members.add(models.Membership{
		ID: models.MembershipID("u10", box2.ID), UserID: "u10", BoxID: box2.ID, Role: models.RoleMember,
	})
	f.hub.Publish("u10")

	waitFor(t, 2*time.Second, func() bool {
		snap := sess.Snapshot()
		return len(snap.Memberships) == 2 && len(snap.VisibleBoxes) == 2
	})

	snap := sess.Snapshot()
	if snap.State != StateReady || snap.Loading {
		t.Fatalf("live updates must not re-enter loading, got %s", snap.State)
	}
}

func TestConcurrentBootstrapKeepsSingleSubscription(t *testing.T) {
	f := newFixture("")
	f.stats.docs["u14"] = models.UserStats{UID: "u14", Role: models.RoleMember}

	// Hold both bootstraps inside profile resolution so each passes the
	// entry teardown before either has subscribed.
	var arrived sync.WaitGroup
	arrived.Add(2)
	release := make(chan struct{})
	f.stats.gate = func() {
		arrived.Done()
		<-release
	}
	go func() {
		arrived.Wait()
		close(release)
	}()

	sess := f.manager.NewSession()
	ident := &identity.Identity{UID: "u14"}
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sess.HandleIdentity(context.Background(), ident); err != nil {
				t.Errorf("bootstrap failed: %v", err)
			}
		}()
	}
	wg.Wait()
	defer sess.Teardown()

	before := f.members.forUserCount()
	f.hub.Publish("u14")
	waitFor(t, 2*time.Second, func() bool {
		return f.members.forUserCount() > before
	})
	time.Sleep(50 * time.Millisecond)
	if got := f.members.forUserCount() - before; got != 1 {
		t.Fatalf("one publish must trigger exactly one refresh, got %d", got)
	}
}

func TestMembershipErrorDegradesToReady(t *testing.T) {
	f := newFixture("")
	f.stats.docs["u11"] = models.UserStats{UID: "u11", Role: models.RoleMember}
	f.members.forUserErr = errors.New("backend down")

	sess := f.manager.NewSession()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "u11"}); err != nil {
		t.Fatalf("degraded bootstrap must not error: %v", err)
	}
	defer sess.Teardown()

	snap := sess.Snapshot()
	if snap.State != StateReady || snap.Loading {
		t.Fatalf("failures must clear loading, got %s loading=%v", snap.State, snap.Loading)
	}
	if len(snap.Memberships) != 0 {
		t.Fatal("degraded session carries no memberships")
	}
}

func TestSetActiveBoxRequiresVisibility(t *testing.T) {
	f := newFixture("admin-uid")
	box1 := f.addBox("Mine")
	box2 := f.addBox("Other")
	f.stats.docs["u12"] = models.UserStats{UID: "u12", Role: models.RoleMember}
	f.members.add(models.Membership{
		ID: models.MembershipID("u12", box1.ID), UserID: "u12", BoxID: box1.ID, Role: models.RoleMember,
	})

	sess := f.manager.NewSession()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "u12"}); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer sess.Teardown()

	if err := sess.SetActiveBox(context.Background(), box2.ID); !errors.Is(err, ErrBoxNotVisible) {
		t.Fatalf("expected ErrBoxNotVisible, got %v", err)
	}
	if err := sess.SetActiveBox(context.Background(), box1.ID); err != nil {
		t.Fatalf("visible box selection failed: %v", err)
	}

	stats, _ := f.stats.Get(context.Background(), "u12")
	if stats.CurrentBoxID == nil || *stats.CurrentBoxID != box1.ID {
		t.Fatal("active box choice must be persisted to the profile")
	}
}

func TestSuperAdminMaySelectAnyBox(t *testing.T) {
	f := newFixture("admin-uid")
	box := f.addBox("Remote Box")
	f.stats.docs["admin-uid"] = models.UserStats{UID: "admin-uid", Role: models.RoleAdmin}

	sess := f.manager.NewSession()
	if err := sess.HandleIdentity(context.Background(), &identity.Identity{UID: "admin-uid"}); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer sess.Teardown()

	snap := sess.Snapshot()
	if len(snap.VisibleBoxes) != 1 {
		t.Fatalf("super admin sees every box, got %d", len(snap.VisibleBoxes))
	}
	if err := sess.SetActiveBox(context.Background(), box.ID); err != nil {
		t.Fatalf("super admin box selection failed: %v", err)
	}
}

func TestSlowBootstrapSetsRetrying(t *testing.T) {
	f := newFixture("")
	f.stats.docs["u13"] = models.UserStats{UID: "u13", Role: models.RoleMember}

	sess := f.manager.NewSession()
	sess.mu.Lock()
	sess.ident = &identity.Identity{UID: "u13"}
	sess.state = StateResolvingProfile
	sess.mu.Unlock()

	sess.armSlowTimer()
	waitFor(t, time.Second, func() bool {
		return sess.Snapshot().Retrying
	})

	// Completing the bootstrap clears the advisory.
	sess.refresh(context.Background())
	snap := sess.Snapshot()
	if snap.Retrying {
		t.Fatal("retrying must clear once the session settles")
	}
}
