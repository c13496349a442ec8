package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

// mockCredentialStore is a simple in-memory store for testing.
type mockCredentialStore struct {
	mu      sync.Mutex
	creds   *Credentials
	corrupt bool
	saveErr error
}

func (m *mockCredentialStore) Load() (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.corrupt {
		return nil, ErrCorrupt
	}
	if m.creds == nil {
		return nil, ErrNoSession
	}
	c := *m.creds
	return &c, nil
}

func (m *mockCredentialStore) Save(creds *Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	c := *creds
	m.creds = &c
	m.corrupt = false
	return nil
}

func (m *mockCredentialStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	m.corrupt = false
	return nil
}

func (m *mockCredentialStore) stored() *Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds
}

// mockAuthAPI returns canned login results.
type mockAuthAPI struct {
	token string
	user  *auth.Profile
	err   error
	calls int
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (string, *auth.Profile, error) {
	m.calls++
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func mintToken(t *testing.T, authorities []string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "user@doistemposcafe.com.br",
		"authorities": authorities,
		"iat":         time.Now().Unix(),
		"exp":         exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestManager(store CredentialStore, api AuthAPI) *Manager {
	return NewManager(store, api, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoginPersistsSession(t *testing.T) {
	token := mintToken(t, []string{"ADMIN", "CLIENT"}, time.Now().Add(time.Hour))
	store := &mockCredentialStore{}
	api := &mockAuthAPI{token: token, user: &auth.Profile{Name: "Ana", Email: "ana@example.com"}}
	m := newTestManager(store, api)

	sess, err := m.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// The write completed before Login returned; subsequent reads must
	// observe the new session.
	if !m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be true after login")
	}
	if got, ok := m.Token(); !ok || got != token {
		t.Errorf("Token() = (%q, %v), want stored token", got, ok)
	}

	roles := sess.Roles
	if len(roles) != 2 || !auth.HasRole(roles, auth.RoleAdmin) || !auth.HasRole(roles, auth.RoleClient) {
		t.Errorf("session roles = %v, want {ADMIN, CLIENT}", roles)
	}
	if role, ok := m.MainRole(); !ok || role != auth.RoleAdmin {
		t.Errorf("MainRole() = %v, want ADMIN by priority", role)
	}
	if profile, ok := m.Profile(); !ok || profile.Name != "Ana" {
		t.Errorf("Profile() = %+v, want cached record", profile)
	}
}

func TestLoginValidatesInput(t *testing.T) {
	store := &mockCredentialStore{}
	api := &mockAuthAPI{token: "ignored"}
	m := newTestManager(store, api)

	for _, tc := range []struct{ email, password string }{
		{"", "password"},
		{"user@example.com", ""},
		{"", ""},
	} {
		if _, err := m.Login(context.Background(), tc.email, tc.password); err == nil {
			t.Errorf("Login(%q, %q) should fail validation", tc.email, tc.password)
		}
	}
	if api.calls != 0 {
		t.Errorf("backend called %d times for invalid input, want 0", api.calls)
	}
}

func TestLoginFailureLeavesNoPartialSession(t *testing.T) {
	backendErr := errors.New("bad credentials")
	store := &mockCredentialStore{}
	m := newTestManager(store, &mockAuthAPI{err: backendErr})

	_, err := m.Login(context.Background(), "user@example.com", "wrong")
	if !errors.Is(err, backendErr) {
		t.Fatalf("Login error = %v, want the backend error unchanged", err)
	}
	if store.stored() != nil {
		t.Error("nothing should be persisted on login failure")
	}
	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be false after failed login")
	}
}

func TestLoginPersistFailureSurfaces(t *testing.T) {
	token := mintToken(t, []string{"CLIENT"}, time.Now().Add(time.Hour))
	diskErr := errors.New("disk full")
	store := &mockCredentialStore{saveErr: diskErr}
	m := newTestManager(store, &mockAuthAPI{token: token})

	_, err := m.Login(context.Background(), "user@example.com", "pw")
	if !errors.Is(err, diskErr) {
		t.Fatalf("Login error = %v, want wrapped store error", err)
	}
	if m.IsAuthenticated() {
		t.Error("a session that failed to persist must not report authenticated")
	}
}

func TestLoginFailureKeepsPriorSession(t *testing.T) {
	oldToken := mintToken(t, []string{"CLIENT"}, time.Now().Add(time.Hour))
	store := &mockCredentialStore{creds: &Credentials{Token: oldToken}}
	m := newTestManager(store, &mockAuthAPI{err: errors.New("backend down")})

	if _, err := m.Login(context.Background(), "user@example.com", "pw"); err == nil {
		t.Fatal("Login should fail")
	}
	if got, ok := m.Token(); !ok || got != oldToken {
		t.Error("a failed login must not disturb the previous session")
	}
}

func TestLoginOverwritesPriorSession(t *testing.T) {
	oldToken := mintToken(t, []string{"CLIENT"}, time.Now().Add(time.Hour))
	newToken := mintToken(t, []string{"MANAGER"}, time.Now().Add(time.Hour))
	store := &mockCredentialStore{creds: &Credentials{Token: oldToken}}
	m := newTestManager(store, &mockAuthAPI{token: newToken})

	if _, err := m.Login(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got, _ := m.Token(); got != newToken {
		t.Error("login must replace the prior token unconditionally")
	}
	if role, _ := m.MainRole(); role != auth.RoleManager {
		t.Errorf("MainRole() = %v after re-login, want MANAGER", role)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	token := mintToken(t, []string{"ADMIN"}, time.Now().Add(time.Hour))
	store := &mockCredentialStore{creds: &Credentials{Token: token, User: &auth.Profile{Name: "Ana"}}}
	m := newTestManager(store, &mockAuthAPI{})

	if err := m.Logout(); err != nil {
		t.Fatalf("first Logout: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}

	if store.stored() != nil {
		t.Error("credentials should be gone after logout")
	}
	if _, ok := m.Profile(); ok {
		t.Error("profile should be gone after logout")
	}
	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be false after logout")
	}
}

func TestExpiredTokenPurgedOnCheck(t *testing.T) {
	expired := mintToken(t, []string{"ADMIN"}, time.Now().Add(-time.Second))
	store := &mockCredentialStore{creds: &Credentials{Token: expired, User: &auth.Profile{Name: "Ana"}}}
	m := newTestManager(store, &mockAuthAPI{})

	// First status check on app start: expired session behaves as if
	// no token had ever been stored, and storage is cleaned.
	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be false for an expired token")
	}
	if store.stored() != nil {
		t.Error("expired credentials should be purged by the check")
	}
	if roles := m.Roles(); len(roles) != 0 {
		t.Errorf("Roles() = %v after expiry, want empty set", roles)
	}
}

func TestCorruptTokenPurgedOnCheck(t *testing.T) {
	store := &mockCredentialStore{creds: &Credentials{Token: "not-a-jwt"}}
	m := newTestManager(store, &mockAuthAPI{})

	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be false for a corrupt token")
	}
	if store.stored() != nil {
		t.Error("corrupt credentials should be purged by the check")
	}
}

func TestCorruptStorePurgedOnCheck(t *testing.T) {
	store := &mockCredentialStore{corrupt: true}
	m := newTestManager(store, &mockAuthAPI{})

	if m.IsAuthenticated() {
		t.Error("IsAuthenticated() should be false for an unreadable store")
	}
	if store.corrupt {
		t.Error("an unreadable store should be purged by the check")
	}
}

func TestIsTokenExpiredDoesNotEvictUnrelatedSession(t *testing.T) {
	valid := mintToken(t, []string{"CLIENT"}, time.Now().Add(time.Hour))
	store := &mockCredentialStore{creds: &Credentials{Token: valid}}
	m := newTestManager(store, &mockAuthAPI{})

	if !m.IsTokenExpired("some-other-garbage") {
		t.Error("garbage token should count as expired")
	}
	if store.stored() == nil {
		t.Error("checking an unrelated token must not purge the stored session")
	}
}

func TestRolesEmptyWithoutSession(t *testing.T) {
	m := newTestManager(&mockCredentialStore{}, &mockAuthAPI{})

	if roles := m.Roles(); len(roles) != 0 {
		t.Errorf("Roles() = %v with no session, want empty", roles)
	}
	if _, ok := m.MainRole(); ok {
		t.Error("MainRole() should report absent with no session")
	}
	if m.IsAdminOrManager() {
		t.Error("IsAdminOrManager() should be false with no session")
	}
}

func TestIsAdminOrManager(t *testing.T) {
	tests := []struct {
		name        string
		authorities []string
		want        bool
	}{
		{"admin", []string{"ADMIN"}, true},
		{"manager", []string{"MANAGER"}, true},
		{"client only", []string{"CLIENT"}, false},
		{"mixed", []string{"CLIENT", "MANAGER"}, true},
		{"lowercase from backend", []string{"manager"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := mintToken(t, tt.authorities, time.Now().Add(time.Hour))
			store := &mockCredentialStore{creds: &Credentials{Token: token}}
			m := newTestManager(store, &mockAuthAPI{})

			if got := m.IsAdminOrManager(); got != tt.want {
				t.Errorf("IsAdminOrManager() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubscribeObservesLifecycle(t *testing.T) {
	token := mintToken(t, []string{"CLIENT"}, time.Now().Add(time.Hour))
	store := &mockCredentialStore{}
	m := newTestManager(store, &mockAuthAPI{token: token})

	var events []EventKind
	cancel := m.Subscribe(func(ev Event) {
		events = append(events, ev.Kind)
	})

	if _, err := m.Login(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	want := []EventKind{EventLogin, EventLogout}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}

	cancel()
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(events) != len(want) {
		t.Error("unsubscribed callback should observe nothing")
	}
}

func TestSubscribeObservesPurge(t *testing.T) {
	expired := mintToken(t, []string{"CLIENT"}, time.Now().Add(-time.Minute))
	store := &mockCredentialStore{creds: &Credentials{Token: expired}}
	m := newTestManager(store, &mockAuthAPI{})

	var purges int
	m.Subscribe(func(ev Event) {
		if ev.Kind == EventPurged {
			purges++
		}
	})

	m.IsAuthenticated()
	if purges != 1 {
		t.Errorf("purge events = %d, want exactly 1", purges)
	}
}

func TestCurrentSnapshot(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := mintToken(t, []string{"MANAGER"}, exp)
	store := &mockCredentialStore{creds: &Credentials{Token: token}}
	m := newTestManager(store, &mockAuthAPI{})

	sess, ok := m.Current()
	if !ok {
		t.Fatal("Current() should find the session")
	}
	if sess.Subject != "user@doistemposcafe.com.br" {
		t.Errorf("Subject = %q", sess.Subject)
	}
	if sess.ExpiresAt.Unix() != exp.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, exp)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Error("Current() should report absent after logout")
	}
}
