package auth

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued by the café backend.
type Claims struct {
	jwt.RegisteredClaims
	// Authorities carries the role strings granted to the subject.
	Authorities []string `json:"authorities"`
}

// DecodeToken parses a compact JWT and returns its claims without
// verifying the signature. The client never holds the signing key;
// the backend re-validates the token on every request, so a forged
// token buys nothing beyond a different local UI state.
func DecodeToken(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// Roles returns the normalized authority set carried by the claims.
func (c *Claims) Roles() []Role {
	roles := make([]Role, 0, len(c.Authorities))
	for _, a := range c.Authorities {
		roles = append(roles, NormalizeRole(a))
	}
	return roles
}

// IsExpired reports whether the expiry claim is in the past, at the
// second resolution the exp claim carries. A token without an exp
// claim is treated as expired.
func (c *Claims) IsExpired() bool {
	if c.ExpiresAt == nil {
		return true
	}
	return time.Now().After(c.ExpiresAt.Time)
}

// TokenFingerprint returns a short stable hash of a token so logs can
// correlate a session without ever recording the credential itself.
func TokenFingerprint(token string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(token))
}
