// Package jwtx wraps golang-jwt with the claim set and HS256 signing this
// service uses for its bearer tokens. Tokens are signed with a single
// process-wide secret configured at startup.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the bearer token lifetime. Sessions are stateless,
// so expiry is the only thing that ends one.
const DefaultAccessTokenTTL = time.Hour

// Claims are the access-token claims. The subject is the user id; Role is the
// user's role name at issue time so handlers can gate without a user lookup.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the role name ("Admin", "Project Lead", "Developer").
	Role string `json:"role,omitempty"`
}

// NewAccessClaims builds the claims for a freshly authenticated user.
func NewAccessClaims(userID, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
}

// ValidateIssuer checks the iss claim when expected is non-empty.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token is inside its exp/nbf window.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
