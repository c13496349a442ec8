// Package auth contains the domain types and logic for authentication.
package auth

import "strings"

// Role represents a user authority for authorization purposes.
type Role string

const (
	// RoleAdmin has full access to every dashboard and operation.
	RoleAdmin Role = "ADMIN"
	// RoleManager has access to the restaurant management dashboard.
	RoleManager Role = "MANAGER"
	// RoleClient is the default authority for registered customers.
	RoleClient Role = "CLIENT"
)

// rolePriority is the tie-break order when an identity holds several
// authorities: ADMIN outranks MANAGER, which outranks CLIENT.
var rolePriority = []Role{RoleAdmin, RoleManager, RoleClient}

// NormalizeRole uppercases a raw authority string from the token.
// All role comparisons in this package assume normalized values.
func NormalizeRole(raw string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsValid returns true if the role is a known valid role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClient:
		return true
	default:
		return false
	}
}

// HasRole returns true if roles contains the specified role.
func HasRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole returns true if roles intersects the allowed set.
func HasAnyRole(roles []Role, allowed ...Role) bool {
	for _, a := range allowed {
		if HasRole(roles, a) {
			return true
		}
	}
	return false
}

// MainRole reduces an authority set to its highest-priority role.
// Returns false when the set holds no known role.
func MainRole(roles []Role) (Role, bool) {
	for _, candidate := range rolePriority {
		if HasRole(roles, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Profile is the cached user record returned by the backend at login.
// It mirrors the user output DTO and exists for display convenience;
// authorization decisions are always derived from the token, never
// from this record.
type Profile struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
