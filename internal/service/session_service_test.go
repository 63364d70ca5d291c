package service

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/shopforge/shopctl/internal/domain/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// memStore is an in-memory session.Store for tests.
type memStore struct {
	mu   sync.Mutex
	sess *session.Session
}

func (m *memStore) Load() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

func (m *memStore) Save(s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = s
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

func adminSession() *session.Session {
	return &session.Session{
		Token: "tok-1",
		User:  session.User{ID: "u-1", Email: "a@b.c", Role: session.RoleAdmin},
	}
}

func TestSessionService_BootstrapFromStore(t *testing.T) {
	store := &memStore{sess: adminSession()}
	svc := NewSessionService(store, testLogger())

	if svc.Token() != "tok-1" {
		t.Errorf("Token = %q, want tok-1", svc.Token())
	}
	if !svc.Current().IsAuthenticated() {
		t.Error("expected authenticated session after bootstrap")
	}
}

func TestSessionService_EstablishAndLogout(t *testing.T) {
	store := &memStore{}
	svc := NewSessionService(store, testLogger())

	if svc.Token() != "" {
		t.Errorf("fresh service should be logged out, got token %q", svc.Token())
	}

	if err := svc.Establish(adminSession()); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if store.Load() == nil {
		t.Error("Establish should persist the session")
	}
	if svc.Token() != "tok-1" {
		t.Errorf("Token = %q, want tok-1", svc.Token())
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.Load() != nil {
		t.Error("Logout should clear the persisted session")
	}
	if svc.Current() != nil {
		t.Error("Logout should clear the in-memory snapshot")
	}
}

func TestSessionService_HandleSessionInvalid(t *testing.T) {
	store := &memStore{sess: adminSession()}
	svc := NewSessionService(store, testLogger())

	var gotReason string
	svc.SetForcedLogoutHandler(func(reason string) { gotReason = reason })

	svc.HandleSessionInvalid("server rejected credential on GET /api/admin/users")

	if svc.Current() != nil {
		t.Error("invalidation should clear the in-memory session")
	}
	if store.Load() != nil {
		t.Error("invalidation should clear the persisted session")
	}
	if gotReason == "" {
		t.Error("forced-logout hook should run with the reason")
	}
}

func TestSessionService_HandleSessionInvalidWhenLoggedOut(t *testing.T) {
	store := &memStore{}
	svc := NewSessionService(store, testLogger())

	hookRan := false
	svc.SetForcedLogoutHandler(func(string) { hookRan = true })

	// No active session: nothing to tear down, hook stays quiet.
	svc.HandleSessionInvalid("stray 403")
	if hookRan {
		t.Error("hook must not run when no session was active")
	}
}

func TestSessionService_ConcurrentInvalidations(t *testing.T) {
	store := &memStore{sess: adminSession()}
	svc := NewSessionService(store, testLogger())

	var mu sync.Mutex
	hookRuns := 0
	svc.SetForcedLogoutHandler(func(string) {
		mu.Lock()
		hookRuns++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.HandleSessionInvalid("burst")
		}()
	}
	wg.Wait()

	if hookRuns != 1 {
		t.Errorf("hook ran %d times for one active session, want 1", hookRuns)
	}
}
