package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/middleware"
)

func TestIssueTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := issueToken(userID, "test-secret", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	parsed, err := middleware.UserIDFromToken("Bearer "+token, "test-secret")
	if err != nil {
		t.Fatalf("UserIDFromToken returned error: %v", err)
	}
	if parsed != userID {
		t.Fatalf("expected %s, got %s", userID.Hex(), parsed.Hex())
	}
}

func TestUserIDFromTokenRejectsWrongSecret(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := issueToken(userID, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	if _, err := middleware.UserIDFromToken("Bearer "+token, "other-secret"); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestUserIDFromTokenRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Token abc", "Bearer not-a-jwt"} {
		if _, err := middleware.UserIDFromToken(header, "test-secret"); err == nil {
			t.Fatalf("expected header %q to be rejected", header)
		}
	}
}

func TestIssueTokenExpiredTokenRejected(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := issueToken(userID, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	if _, err := middleware.UserIDFromToken("Bearer "+token, "test-secret"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
