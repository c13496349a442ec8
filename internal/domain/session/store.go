package session

import (
	"errors"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

// Credentials is the persisted session state: a token entry plus an
// optional cached user profile, written together at login and removed
// together at logout or purge.
type Credentials struct {
	Token string        `json:"token"`
	User  *auth.Profile `json:"user,omitempty"`
}

// CredentialStore persists the session credentials.
// This interface is defined in the domain to avoid circular imports.
// Implementations: file-backed (prod), in-memory (test).
type CredentialStore interface {
	// Load reads the stored credentials.
	// Returns ErrNoSession when nothing is stored.
	Load() (*Credentials, error)

	// Save replaces the stored credentials unconditionally.
	Save(creds *Credentials) error

	// Clear removes the stored credentials. Clearing an empty store
	// is a no-op, not an error.
	Clear() error
}

// ErrNoSession is returned when no credentials are stored.
var ErrNoSession = errors.New("no session")

// ErrCorrupt is returned when stored credentials cannot be read back.
// The Manager treats it as "no session" and purges the store.
var ErrCorrupt = errors.New("corrupt credentials")
