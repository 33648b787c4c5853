package service

import (
	"testing"
	"time"

	"lingua_webapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionRoundTrip(t *testing.T) {
	InitJWT("session-secret", "identity-secret")

	token, err := GenerateSession(42, domain.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	userID, role, err := ParseSession(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
	if role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", role, domain.RoleAdmin)
	}
}

func TestParseSessionRejectsIdentitySecret(t *testing.T) {
	InitJWT("session-secret", "identity-secret")

	// An identity assertion is not a session token even though both are HS256.
	claims := jwt.MapClaims{"user_id": float64(1), "exp": time.Now().Add(time.Hour).Unix()}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("identity-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := ParseSession(assertion); err == nil {
		t.Fatal("session parser accepted an identity-signed token")
	}
}

func TestParseSessionExpired(t *testing.T) {
	InitJWT("session-secret", "")

	claims := jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("session-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := ParseSession(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseIdentityAssertion(t *testing.T) {
	InitJWT("session-secret", "identity-secret")

	claims := jwt.MapClaims{
		"sub":      "user_2abc",
		"username": "anna_k",
		"name":     "Anna",
		"country":  "GE",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("identity-secret"))
	if err != nil {
		t.Fatal(err)
	}

	ic, err := ParseIdentityAssertion(assertion)
	if err != nil {
		t.Fatal(err)
	}
	if ic.ClerkID != "user_2abc" {
		t.Errorf("ClerkID = %q, want user_2abc", ic.ClerkID)
	}
	if ic.Username != "anna_k" || ic.Name != "Anna" || ic.Country != "GE" {
		t.Errorf("profile claims = %+v", ic)
	}
	if ic.Role != domain.RoleFree {
		t.Errorf("missing role should default to %q, got %q", domain.RoleFree, ic.Role)
	}
}

func TestParseIdentityAssertionMissingSub(t *testing.T) {
	InitJWT("session-secret", "identity-secret")

	claims := jwt.MapClaims{
		"username": "anna_k",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("identity-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseIdentityAssertion(assertion); err == nil {
		t.Fatal("assertion without sub accepted")
	}
}
