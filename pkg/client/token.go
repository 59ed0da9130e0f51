// Package client is the reservation engine's collaborator-facing side: it
// derives an advisory identity from the bearer credential, keeps a durable
// single-slot session, calls the reservation API, and refreshes the caller's
// reservations in the background.
package client

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

const bearerPrefix = "Bearer "

// ParseIdentity decodes the credential's payload into an Identity without
// verifying the signature. The result is advisory, for routing and display;
// every privileged operation is still authorized by the collaborator. Any
// decode failure yields ErrCredentialInvalid and no partial identity.
func ParseIdentity(credential string) (domain.Identity, error) {
	token := stripBearer(credential)
	if token == "" {
		return domain.Identity{}, domain.ErrCredentialInvalid
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrCredentialInvalid, err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject", domain.ErrCredentialInvalid)
	}

	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)
	if username == "" {
		username = sub
	}

	return domain.Identity{ID: sub, Role: domain.Role(role), Username: username}, nil
}

// Canonical normalizes a raw credential to the conventional "Bearer <token>"
// form regardless of how the caller supplied it.
func Canonical(credential string) string {
	token := stripBearer(credential)
	if token == "" {
		return ""
	}
	return bearerPrefix + token
}

func stripBearer(credential string) string {
	credential = strings.TrimSpace(credential)
	if len(credential) >= len(bearerPrefix) && strings.EqualFold(credential[:len(bearerPrefix)], bearerPrefix) {
		credential = credential[len(bearerPrefix):]
	}
	return strings.TrimSpace(credential)
}
