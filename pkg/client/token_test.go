package client

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":      "user_1",
		"role":     "CUSTOMER",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func TestParseIdentity_Success(t *testing.T) {
	identity, err := ParseIdentity(mintToken(t, validClaims()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != "user_1" {
		t.Errorf("id: expected user_1, got %q", identity.ID)
	}
	if identity.Role != domain.RoleCustomer {
		t.Errorf("role: expected CUSTOMER, got %q", identity.Role)
	}
	if identity.Username != "alice" {
		t.Errorf("username: expected alice, got %q", identity.Username)
	}
}

func TestParseIdentity_BearerPrefixVariants(t *testing.T) {
	token := mintToken(t, validClaims())

	for _, credential := range []string{
		token,
		"Bearer " + token,
		"bearer " + token,
		"  Bearer " + token + "  ",
	} {
		if _, err := ParseIdentity(credential); err != nil {
			t.Errorf("credential %q: unexpected error %v", credential, err)
		}
	}
}

func TestParseIdentity_NoSignatureVerification(t *testing.T) {
	// The payload is decoded as-is even with a garbage signature; the
	// collaborator is the one verifying.
	token := mintToken(t, validClaims())
	tampered := token[:len(token)-4] + "XXXX"

	identity, err := ParseIdentity(tampered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != "user_1" {
		t.Errorf("expected decoded identity regardless of signature, got %q", identity.ID)
	}
}

func TestParseIdentity_Malformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"Bearer ",
		"not-a-token",
		"a.b",          // too few segments
		"a.b.c.d",      // too many segments
		"Bearer a.!.c", // undecodable payload
	}
	for _, credential := range cases {
		_, err := ParseIdentity(credential)
		if !errors.Is(err, domain.ErrCredentialInvalid) {
			t.Errorf("credential %q: expected ErrCredentialInvalid, got %v", credential, err)
		}
	}
}

func TestParseIdentity_MissingSubject(t *testing.T) {
	claims := validClaims()
	delete(claims, "sub")

	_, err := ParseIdentity(mintToken(t, claims))
	if !errors.Is(err, domain.ErrCredentialInvalid) {
		t.Fatalf("expected ErrCredentialInvalid without subject, got %v", err)
	}
}

func TestParseIdentity_UsernameFallsBackToSubject(t *testing.T) {
	claims := validClaims()
	delete(claims, "username")

	identity, err := ParseIdentity(mintToken(t, claims))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Username != "user_1" {
		t.Errorf("expected username fallback to subject, got %q", identity.Username)
	}
}

func TestCanonical(t *testing.T) {
	token := mintToken(t, validClaims())

	for _, credential := range []string{token, "Bearer " + token, "bearer " + token} {
		if got := Canonical(credential); got != "Bearer "+token {
			t.Errorf("Canonical(%q) = %q", credential, got)
		}
	}
	if got := Canonical("  "); got != "" {
		t.Errorf("empty credential must stay empty, got %q", got)
	}
}
