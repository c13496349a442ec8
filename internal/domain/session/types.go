// Package session owns the client-side authentication session: the
// persisted token, the identity derived from it, and every
// authentication or role query the rest of the application asks.
package session

import (
	"time"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

// Session is a point-in-time snapshot of the authenticated session,
// derived from the stored token at the moment it is requested.
type Session struct {
	// Token is the raw credential as issued by the backend.
	Token string
	// Subject is the sub claim, the account identifier.
	Subject string
	// Roles are the normalized authorities decoded from the token.
	Roles []auth.Role
	// IssuedAt and ExpiresAt come from the iat/exp claims (UTC).
	IssuedAt  time.Time
	ExpiresAt time.Time
	// Profile is the cached user record, when the backend returned one.
	Profile *auth.Profile
}

// EventKind classifies a session change notification.
type EventKind int

const (
	// EventLogin fires after a login has been fully persisted.
	EventLogin EventKind = iota
	// EventLogout fires after an explicit logout.
	EventLogout
	// EventPurged fires when an expired or corrupt credential was
	// removed during a status check.
	EventPurged
)

// String returns the event kind name for logs.
func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventPurged:
		return "purged"
	default:
		return "unknown"
	}
}

// Event is a session change notification delivered to subscribers.
type Event struct {
	Kind EventKind
}
