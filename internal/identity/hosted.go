package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
)

// HostedProvider implements Provider against a hosted identity service:
// token verification via its JWKS endpoint, identity deletion via its
// admin REST API.
type HostedProvider struct {
	jwks       *JWKSClient
	httpClient *http.Client
	adminURL   string
	adminKey   string
}

func NewHostedProvider(cfg *config.Config) *HostedProvider {
	return &HostedProvider{
		jwks:       NewJWKSClient(cfg.IdentityJWKSURL, cfg.IdentityIssuer, cfg.IdentityAudience),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		adminURL:   cfg.IdentityAdminURL,
		adminKey:   cfg.IdentityAdminKey,
	}
}

func (p *HostedProvider) Verify(ctx context.Context, idToken string) (*Identity, error) {
	claims, err := p.jwks.VerifyToken(idToken)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:         claims.Sub,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

func (p *HostedProvider) DeleteIdentity(ctx context.Context, uid string) error {
	endpoint := fmt.Sprintf("%s/accounts/%s", p.adminURL, url.PathEscape(uid))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build identity delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.adminKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("identity provider returned status %d deleting %s", resp.StatusCode, uid)
	}
	return nil
}
