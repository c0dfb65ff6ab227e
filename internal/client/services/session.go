package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

// SessionStore is the in-memory session of one client run. It mirrors the
// persisted profile but never reads the token; the RouteGuard does that.
type SessionStore struct {
	creds *CredentialStore
	log   logging.Logger

	once sync.Once

	mu            sync.RWMutex
	user          *models.UserProfile
	authenticated bool
}

func NewSessionStore(creds *CredentialStore, log logging.Logger) *SessionStore {
	return &SessionStore{creds: creds, log: log}
}

// Initialize loads the persisted profile. Only the first call has any
// effect.
func (s *SessionStore) Initialize(ctx context.Context) {
	s.once.Do(func() {
		u, err := s.creds.User(ctx)
		if err != nil {
			s.log.Warn(ctx, "failed to load persisted user", "err", err)
			return
		}
		if u == nil {
			return
		}
		s.mu.Lock()
		s.user = u
		s.authenticated = true
		s.mu.Unlock()
	})
}

// Login marks the session authenticated and persists the profile. Storage
// failures are logged and otherwise ignored.
func (s *SessionStore) Login(ctx context.Context, u models.UserProfile) {
	s.mu.Lock()
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	if err := s.creds.SetUser(ctx, u); err != nil {
		s.log.Warn(ctx, "failed to persist user", "err", err)
	}
}

// Logout clears the session, the persisted profile and the token cookie.
// Logging out twice is harmless.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear credentials", "err", err)
	}
}

// User returns a copy of the current profile, or nil.
func (s *SessionStore) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}
