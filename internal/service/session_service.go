// Package service holds the controllers that sit between the admin API
// client and the CLI surface: the session lifecycle owner, the generic
// list/filter/mutate controller, and the form controllers.
package service

import (
	"log/slog"
	"sync"

	"github.com/shopforge/shopctl/internal/domain/session"
)

// SessionService owns the session lifecycle: it loads the snapshot at
// bootstrap, establishes it on login, tears it down on logout, and is the
// one subscriber to the client's session-invalid signal. Nothing else
// writes the session store.
type SessionService struct {
	store  session.Store
	logger *slog.Logger

	mu      sync.RWMutex
	current *session.Session

	// onForcedLogout runs after a server-triggered invalidation has cleared
	// the session, so the UI layer can route back to login. Optional.
	onForcedLogout func(reason string)
}

// NewSessionService creates a SessionService and loads the persisted
// snapshot. A missing or corrupted record simply means logged out.
func NewSessionService(store session.Store, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:   store,
		logger:  logger,
		current: store.Load(),
	}
}

// SetForcedLogoutHandler registers the navigation hook run after a
// server-triggered logout. Call once at startup, before any requests.
func (s *SessionService) SetForcedLogoutHandler(f func(reason string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onForcedLogout = f
}

// Current returns the in-memory session snapshot, or nil when logged out.
func (s *SessionService) Current() *session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current bearer token, or "" when logged out.
// This is the token provider handed to the API client.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Establish persists and adopts a freshly logged-in session.
func (s *SessionService) Establish(sess *session.Session) error {
	if err := s.store.Save(sess); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.logger.Info("session established", "user", sess.User.Email, "role", sess.User.Role)
	return nil
}

// Logout clears the session explicitly (the user asked to leave).
func (s *SessionService) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.logger.Info("session cleared")
	return nil
}

// HandleSessionInvalid is the observer wired into the API client. The server
// rejected the stored credential, so the session is torn down regardless of
// what the failing caller does with its error, and the forced-logout hook
// runs afterwards.
func (s *SessionService) HandleSessionInvalid(reason string) {
	s.mu.Lock()
	wasActive := s.current != nil
	s.current = nil
	hook := s.onForcedLogout
	s.mu.Unlock()

	if !wasActive {
		return
	}

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear session after invalidation", "error", err)
	}
	s.logger.Info("session invalidated by server", "reason", reason)

	if hook != nil {
		hook(reason)
	}
}
