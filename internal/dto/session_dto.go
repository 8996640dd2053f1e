package dto

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/session"
)

// SignInRequest carries the provider ID token from an interactive sign-in,
// plus the one-time invite token when the user arrived via an invite link.
// The invite token is consumed exactly once; clients drop it after a
// successful sign-in.
type SignInRequest struct {
	IDToken     string `json:"id_token"`
	InviteToken string `json:"invite_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignInResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Session      session.Snapshot `json:"session"`
}

type ActiveBoxRequest struct {
	BoxID string `json:"box_id"`
}
