package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boxtrackhq/boxtrack-backend/internal/models"
)

// Resolution is the box visibility resolved for one membership emission.
type Resolution struct {
	Visible []models.Box
	Active  *models.Box
}

// BoxResolver turns a membership set into the visible-box list and the
// active-box selection. Deterministic given identical inputs; the one
// impure step is the super-administrator all-boxes fetch.
type BoxResolver struct {
	boxes         BoxStore
	superAdminUID string
}

func NewBoxResolver(boxes BoxStore, superAdminUID string) *BoxResolver {
	return &BoxResolver{boxes: boxes, superAdminUID: superAdminUID}
}

// IsSuperAdministrator is the single predicate guarding the hard-coded
// super-administrator identity.
func (r *BoxResolver) IsSuperAdministrator(uid string) bool {
	return uid != "" && uid == r.superAdminUID
}

// Resolve implements the selection precedence: the persisted current box
// when it is still visible, else the first membership-derived box, else
// the first visible box, else none. Memberships pointing at boxes that no
// longer resolve are logged and skipped.
func (r *BoxResolver) Resolve(ctx context.Context, uid string, memberships []models.Membership, stats *models.UserStats) (Resolution, error) {
	memberBoxes := make([]models.Box, 0, len(memberships))
	for _, m := range memberships {
		box, err := r.boxes.Get(ctx, m.BoxID)
		if err != nil {
			slog.Error("box lookup failed", "uid", uid, "box_id", m.BoxID.String(), "error", err)
			continue
		}
		if box == nil {
			slog.Warn("membership references missing box", "uid", uid, "box_id", m.BoxID.String())
			continue
		}
		memberBoxes = append(memberBoxes, *box)
	}

	visible := memberBoxes
	if r.IsSuperAdministrator(uid) {
		all, err := r.boxes.All(ctx)
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to list boxes for super administrator: %w", err)
		}
		visible = all
	}

	return Resolution{
		Visible: visible,
		Active:  pickActive(visible, memberBoxes, stats),
	}, nil
}

func pickActive(visible, memberBoxes []models.Box, stats *models.UserStats) *models.Box {
	if stats != nil && stats.CurrentBoxID != nil {
		for i := range visible {
			if visible[i].ID == *stats.CurrentBoxID {
				return &visible[i]
			}
		}
	}
	// A membership-derived box wins over an arbitrary visible one, even
	// for the super administrator.
	if len(memberBoxes) > 0 {
		return &memberBoxes[0]
	}
	if len(visible) > 0 {
		return &visible[0]
	}
	return nil
}
