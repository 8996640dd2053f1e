package dto

type CreateInvitationRequest struct {
	Email                string `json:"email"`
	Role                 string `json:"role"`
	VisitorExpiresInDays *int   `json:"visitor_expires_in_days,omitempty"`
}

// InviteTokenResponse is what the sign-in page sees when resolving an
// invite link before any authentication has happened. Deliberately thin.
type InviteTokenResponse struct {
	Email   string `json:"email"`
	BoxName string `json:"box_name"`
	Role    string `json:"role"`
}
