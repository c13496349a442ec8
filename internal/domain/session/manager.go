package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

// AuthAPI is the backend login contract the Manager consumes.
// Implemented by the REST client adapter.
type AuthAPI interface {
	// Login exchanges credentials for a token and, on newer backends,
	// the user record. Any transport or backend rejection comes back
	// as an error with nothing else to apply.
	Login(ctx context.Context, email, password string) (token string, user *auth.Profile, err error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// loginInput is validated before the network round trip. Only presence
// is checked here; credential constraints belong to the backend.
type loginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Manager is the single source of truth for "is there a valid session,
// and what can it do". It owns the persisted credentials; everything
// else asks it instead of decoding tokens on its own.
//
// Reads go to the store on every query, so a credential written by
// another process is picked up on the next check. Two processes
// logging in at once last-write-wins; the store does not arbitrate.
type Manager struct {
	store  CredentialStore
	api    AuthAPI
	logger *slog.Logger

	mu      sync.Mutex
	nextSub int
	subs    map[int]func(Event)
}

// NewManager creates a Manager over the given store and auth API.
func NewManager(store CredentialStore, api AuthAPI, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		api:    api,
		logger: logger,
		subs:   make(map[int]func(Event)),
	}
}

// SetAuthAPI wires the backend the Manager logs in through. Split from
// the constructor because the REST client needs the Manager as its
// token source before it exists itself.
func (m *Manager) SetAuthAPI(api AuthAPI) {
	m.api = api
}

// Login authenticates against the backend and persists the returned
// credentials, replacing any prior session unconditionally. On failure
// nothing is persisted and the API error is returned unchanged so the
// caller can present it.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("login: email and password are required: %w", err)
	}

	token, user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	creds := &Credentials{Token: token, User: user}
	if err := m.store.Save(creds); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.logger.Info("session established",
		"token_fp", auth.TokenFingerprint(token))
	m.notify(Event{Kind: EventLogin})

	return m.snapshot(creds), nil
}

// Logout removes the stored credentials. Logging out without a session
// is a no-op; calling it twice produces the same end state as once.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.logger.Debug("session cleared")
	m.notify(Event{Kind: EventLogout})
	return nil
}

// Token returns the stored token, if any. A pure storage read: no
// decoding, no network.
func (m *Manager) Token() (string, bool) {
	creds, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			// Fail closed: an unreadable store is purged so later
			// checks see "no session" instead of the same failure.
			if clearErr := m.store.Clear(); clearErr != nil {
				m.logger.Warn("purge of corrupt store failed", "error", clearErr)
			} else {
				m.logger.Info("corrupt credential store purged")
				m.notify(Event{Kind: EventPurged})
			}
		} else if !errors.Is(err, ErrNoSession) {
			m.logger.Warn("credential store read failed", "error", err)
		}
		return "", false
	}
	if creds.Token == "" {
		return "", false
	}
	return creds.Token, true
}

// IsTokenExpired reports whether the given token is past its expiry.
// A token that fails to decode is treated as expired (fail closed),
// and if it is the stored one it is purged so subsequent checks see
// "no session" instead of failing to decode again. A stored token
// observed expired is purged the same way.
func (m *Manager) IsTokenExpired(token string) bool {
	claims, err := auth.DecodeToken(token)
	if err != nil {
		m.purgeIfStored(token, "token decode failed")
		return true
	}
	if claims.IsExpired() {
		m.purgeIfStored(token, "token expired")
		return true
	}
	return false
}

// IsAuthenticated is true only when a stored token decodes to an
// unexpired claim set. The cached profile is not consulted: the token
// alone decides.
func (m *Manager) IsAuthenticated() bool {
	token, ok := m.Token()
	if !ok {
		return false
	}
	return !m.IsTokenExpired(token)
}

// Roles returns the authority set decoded from the current token, or
// an empty set when there is no valid session. It never fails: decode
// problems downgrade to "no roles".
func (m *Manager) Roles() []auth.Role {
	token, ok := m.Token()
	if !ok {
		return nil
	}
	if m.IsTokenExpired(token) {
		return nil
	}
	claims, err := auth.DecodeToken(token)
	if err != nil {
		return nil
	}
	return claims.Roles()
}

// MainRole reduces the current authority set to its highest-priority
// role (ADMIN over MANAGER over CLIENT). False when logged out.
func (m *Manager) MainRole() (auth.Role, bool) {
	return auth.MainRole(m.Roles())
}

// HasAnyRole is the capability query route guards and the CLI use:
// true iff the current authority set intersects the allowed set.
func (m *Manager) HasAnyRole(allowed ...auth.Role) bool {
	return auth.HasAnyRole(m.Roles(), allowed...)
}

// IsAdminOrManager reports whether the session may enter the
// management dashboards.
func (m *Manager) IsAdminOrManager() bool {
	return m.HasAnyRole(auth.RoleAdmin, auth.RoleManager)
}

// Profile returns the cached user record stored at login, if any.
// Display convenience only; it never feeds authorization.
func (m *Manager) Profile() (*auth.Profile, bool) {
	creds, err := m.store.Load()
	if err != nil || creds.User == nil {
		return nil, false
	}
	return creds.User, true
}

// Current returns a snapshot of the session, or false when there is no
// valid one.
func (m *Manager) Current() (*Session, bool) {
	if !m.IsAuthenticated() {
		return nil, false
	}
	creds, err := m.store.Load()
	if err != nil {
		return nil, false
	}
	return m.snapshot(creds), true
}

// Subscribe registers a session change callback, fired on login,
// logout, and purge of an expired or corrupt credential. The returned
// function removes the subscription.
func (m *Manager) Subscribe(fn func(Event)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// notify delivers an event to all subscribers, outside the lock so a
// callback may subscribe or unsubscribe.
func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// purgeIfStored clears storage when the offending token is the stored
// one. Checking arbitrary tokens must not evict an unrelated session.
func (m *Manager) purgeIfStored(token, reason string) {
	stored, ok := m.Token()
	if !ok || stored != token {
		return
	}
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("session purge failed", "reason", reason, "error", err)
		return
	}
	m.logger.Info("session purged",
		"reason", reason,
		"token_fp", auth.TokenFingerprint(token))
	m.notify(Event{Kind: EventPurged})
}

// snapshot derives a Session from stored credentials. Claims that fail
// to decode leave the identity fields zero; Login has already accepted
// the token, so this is a best-effort view.
func (m *Manager) snapshot(creds *Credentials) *Session {
	s := &Session{Token: creds.Token, Profile: creds.User}
	claims, err := auth.DecodeToken(creds.Token)
	if err != nil {
		return s
	}
	s.Subject = claims.Subject
	s.Roles = claims.Roles()
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return s
}
