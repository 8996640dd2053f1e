package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvitationRequired gates email-based sign-up: a new email identity
	// without a pending invitation must never produce a usable session.
	ErrInvitationRequired = errors.New("an invitation is required to join; contact your box administrator")

	// ErrNotSignedIn is returned by session operations after sign-out.
	ErrNotSignedIn = errors.New("no signed-in identity")

	// ErrBoxNotVisible is returned when an active-box selection references
	// a box the identity has no membership for.
	ErrBoxNotVisible = errors.New("box is not visible to this identity")
)

// EmailMismatchError is returned when a one-time invite token resolves to
// an invitation addressed to a different email than the one that signed in.
type EmailMismatchError struct {
	Expected string
	Actual   string
}

func (e *EmailMismatchError) Error() string {
	return fmt.Sprintf("invitation was issued for %s but you signed in as %s", e.Expected, e.Actual)
}
