package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.Issue(userID, time.Now())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got != userID {
		t.Errorf("verified id = %s, want %s", got, userID)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue(uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("token signed with a different secret should be rejected")
	}
}

func TestTokenExpiredRejected(t *testing.T) {
	svc := NewTokenService("test-secret")

	// Issued far enough in the past that the TTL has elapsed.
	issuedAt := time.Now().Add(-TokenTTL - time.Hour)
	token, err := svc.Issue(uuid.New(), issuedAt)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(bad); err == nil {
			t.Errorf("Verify(%q) should fail", bad)
		}
	}
}
