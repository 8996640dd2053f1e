package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/identity"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/boxtrackhq/boxtrack-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("invalid or expired refresh token")
)

// AuthService mints API token pairs after the identity provider has
// verified who the caller is. There are no local credentials; the hosted
// provider owns those.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	provider identity.Provider
	members  *store.MembershipStore
}

func NewAuthService(db *gorm.DB, cfg *config.Config, provider identity.Provider, members *store.MembershipStore) *AuthService {
	return &AuthService{db: db, cfg: cfg, provider: provider, members: members}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) GenerateTokenPair(ident *identity.Identity) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(ident)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ident.UID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued, so a replayed token fails.
func (s *AuthService) Refresh(rawToken string) (*TokenPair, error) {
	tokenHash := hashToken(rawToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var stats models.UserStats
	if err := s.db.First(&stats, "uid = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("profile not found for refresh: %w", err)
	}

	ident := &identity.Identity{UID: stats.UID, Email: stats.Email, DisplayName: stats.DisplayName}
	accessToken, err := s.generateAccessToken(ident)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(stats.UID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Logout(rawToken string) error {
	tokenHash := hashToken(rawToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// DeleteAccount removes the identity at the provider and every local
// record tied to it. Provider deletion goes first so a partial failure
// never leaves an identity that can sign back in to orphaned data.
func (s *AuthService) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.provider.DeleteIdentity(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	if err := s.members.DeleteForUser(ctx, uid); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", uid).Delete(&models.RefreshToken{})
		return tx.Delete(&models.UserStats{}, "uid = ?", uid).Error
	})
}

func (s *AuthService) generateAccessToken(ident *identity.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   ident.UID,
		"email": ident.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(uid string) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    uid,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
