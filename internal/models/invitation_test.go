package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestInvitationTokenRoundTrip(t *testing.T) {
	raw, tokenID, secretHash, err := NewInvitationToken()
	if err != nil {
		t.Fatal(err)
	}

	parsedID, secret, ok := ParseInvitationToken(raw)
	if !ok {
		t.Fatal("minted token must parse")
	}
	if parsedID != tokenID {
		t.Fatalf("token id mismatch: %s != %s", parsedID, tokenID)
	}

	inv := Invitation{TokenID: tokenID, TokenHash: secretHash}
	if !inv.MatchesSecret(secret) {
		t.Fatal("secret must match its own hash")
	}
	if inv.MatchesSecret(secret + "x") {
		t.Fatal("altered secret must not match")
	}
}

func TestParseInvitationTokenRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "no-separator", ".secret-only", "id-only."} {
		if _, _, ok := ParseInvitationToken(raw); ok {
			t.Fatalf("malformed token %q must not parse", raw)
		}
	}
}

func TestInvitationExpiry(t *testing.T) {
	live := Invitation{ExpiresAt: time.Now().Add(time.Hour)}
	if live.IsExpired() {
		t.Fatal("future expiry is not expired")
	}
	dead := Invitation{ExpiresAt: time.Now().Add(-time.Hour)}
	if !dead.IsExpired() {
		t.Fatal("past expiry is expired")
	}
}

func TestMembershipID(t *testing.T) {
	boxID := mustUUID(t, "7b8a1c9e-0f2d-4e3a-9b5c-6d7e8f9a0b1c")
	got := MembershipID("user-1", boxID)
	want := "user-1_7b8a1c9e-0f2d-4e3a-9b5c-6d7e8f9a0b1c"
	if got != want {
		t.Fatalf("membership id %q != %q", got, want)
	}
}
