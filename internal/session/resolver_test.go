package session

import (
	"context"
	"testing"

	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/google/uuid"
)

func membershipFor(uid string, boxID uuid.UUID) models.Membership {
	return models.Membership{
		ID:     models.MembershipID(uid, boxID),
		UserID: uid,
		BoxID:  boxID,
		Role:   models.RoleMember,
	}
}

func TestResolvePrefersPersistedCurrentBox(t *testing.T) {
	f := newFixture("")
	box1 := f.addBox("A")
	box2 := f.addBox("B")

	stats := &models.UserStats{UID: "u1", CurrentBoxID: &box2.ID}
	memberships := []models.Membership{
		membershipFor("u1", box1.ID),
		membershipFor("u1", box2.ID),
	}

	res, err := f.manager.resolver.Resolve(context.Background(), "u1", memberships, stats)
	if err != nil {
		t.Fatal(err)
	}
	if res.Active == nil || res.Active.ID != box2.ID {
		t.Fatalf("persisted current box should win, got %+v", res.Active)
	}
}

func TestResolveStaleCurrentBoxFallsBack(t *testing.T) {
	f := newFixture("")
	box := f.addBox("Only")
	stale := uuid.New()

	stats := &models.UserStats{UID: "u1", CurrentBoxID: &stale}
	res, err := f.manager.resolver.Resolve(context.Background(), "u1", []models.Membership{membershipFor("u1", box.ID)}, stats)
	if err != nil {
		t.Fatal(err)
	}
	if res.Active == nil || res.Active.ID != box.ID {
		t.Fatalf("stale current box must fall back to the membership box, got %+v", res.Active)
	}
}

func TestResolveSkipsMissingBoxes(t *testing.T) {
	f := newFixture("")
	box := f.addBox("Kept")
	gone := uuid.New()

	memberships := []models.Membership{
		membershipFor("u1", gone),
		membershipFor("u1", box.ID),
	}
	res, err := f.manager.resolver.Resolve(context.Background(), "u1", memberships, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Visible) != 1 || res.Visible[0].ID != box.ID {
		t.Fatalf("missing boxes are skipped, got %+v", res.Visible)
	}
}

func TestResolveSuperAdminSeesAllBoxes(t *testing.T) {
	f := newFixture("root")
	f.addBox("One")
	f.addBox("Two")
	f.addBox("Three")

	res, err := f.manager.resolver.Resolve(context.Background(), "root", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Visible) != 3 {
		t.Fatalf("super admin visibility should cover all boxes, got %d", len(res.Visible))
	}
	if res.Active == nil {
		t.Fatal("super admin with no memberships still gets a default active box")
	}
}

func TestResolveEmptyYieldsNoActiveBox(t *testing.T) {
	f := newFixture("")

	res, err := f.manager.resolver.Resolve(context.Background(), "u1", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Visible) != 0 || res.Active != nil {
		t.Fatalf("no memberships means no boxes, got %+v", res)
	}
}

func TestResolveDeterministicOrder(t *testing.T) {
	f := newFixture("")
	box1 := f.addBox("First")
	box2 := f.addBox("Second")

	memberships := []models.Membership{
		membershipFor("u1", box1.ID),
		membershipFor("u1", box2.ID),
	}
	for i := 0; i < 5; i++ {
		res, err := f.manager.resolver.Resolve(context.Background(), "u1", memberships, nil)
		if err != nil {
			t.Fatal(err)
		}
		if res.Visible[0].ID != box1.ID || res.Visible[1].ID != box2.ID {
			t.Fatal("visible order must follow membership order")
		}
		if res.Active.ID != box1.ID {
			t.Fatal("active box must be stable across identical inputs")
		}
	}
}
