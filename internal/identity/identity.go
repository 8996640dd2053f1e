package identity

import "context"

// Identity is the shape consumed from the hosted identity provider.
// Anonymous identities carry no email.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// IsAnonymous reports whether the identity was issued without an email.
func (i *Identity) IsAnonymous() bool {
	return i.Email == ""
}

// Provider is the contract with the hosted identity provider. The provider
// owns the identity lifecycle; the application only verifies tokens and,
// on a rejected sign-up, deletes the half-created identity.
type Provider interface {
	// Verify validates a provider-issued ID token and returns the identity
	// it asserts.
	Verify(ctx context.Context, idToken string) (*Identity, error)

	// DeleteIdentity removes the identity record at the provider. Used by
	// the invitation gate so a rejected sign-up leaves no residual session.
	DeleteIdentity(ctx context.Context, uid string) error
}
