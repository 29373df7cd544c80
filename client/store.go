package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrymomot/authsvc/modules/user"
)

// CheckInterval is how long a successful auth check stays fresh before the
// store revalidates against the server.
const CheckInterval = 45 * time.Minute

// Store holds the client-side view of the session: the last known user, an
// authenticated flag and the time of the last server check. It persists a
// JSON snapshot so a restarted client can render the last known state
// optimistically while revalidating in the background.
type Store struct {
	api *Client
	log *slog.Logger

	mu            sync.Mutex
	user          *user.Profile
	authenticated bool
	lastCheckedAt time.Time
	lastError     string
	checking      bool

	path string
	now  func() time.Time
}

type snapshot struct {
	User          *user.Profile `json:"user"`
	Authenticated bool          `json:"authenticated"`
	LastCheckedAt time.Time     `json:"lastCheckedAt"`
}

// NewStore creates a session store backed by the API client. path is the
// snapshot file; an empty path disables persistence. A snapshot on disk is
// loaded as the optimistic initial state.
func NewStore(api *Client, log *slog.Logger, path string) *Store {
	s := &Store{
		api:  api,
		log:  log,
		path: path,
		now:  time.Now,
	}
	s.load()
	return s
}

// User returns the last known profile, or nil when signed out.
func (s *Store) User() *user.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports the last known session state.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// LastError returns the message of the last failed operation, cleared on
// the next success.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SetUser replaces the user and derives the authenticated flag in one
// critical section so observers never see the two out of sync.
func (s *Store) SetUser(u *user.Profile) {
	s.mu.Lock()
	s.user = u
	s.authenticated = u != nil
	s.mu.Unlock()
	s.persist()
}

// SignUp registers a new account and populates the store with the returned
// profile so the UI can greet the new user right away. The next stale-state
// check re-resolves against the server once the verification flow is done.
func (s *Store) SignUp(ctx context.Context, params SignUpParams) (*user.Profile, error) {
	profile, err := s.api.SignUp(ctx, params)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	s.mu.Lock()
	s.user = profile
	s.authenticated = true
	s.lastCheckedAt = s.now()
	s.lastError = ""
	s.mu.Unlock()
	s.persist()
	return profile, nil
}

// SignIn authenticates and, on success, populates the store.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	profile, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		s.setError(err)
		return err
	}

	s.mu.Lock()
	s.user = profile
	s.authenticated = true
	s.lastCheckedAt = s.now()
	s.lastError = ""
	s.mu.Unlock()
	s.persist()
	return nil
}

// SignOut clears the local session regardless of whether the server call
// succeeds; the server side is best effort.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.api.SignOut(ctx); err != nil {
		s.log.Warn("server logout failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.lastError = ""
	s.mu.Unlock()
	s.persist()
}

// CheckAuth revalidates the session against the server. Within the check
// interval it is a no-op unless force is set. Concurrent calls collapse
// into one request: the losers return the current state immediately.
// Both outcomes stamp lastCheckedAt, so a failing server is not hammered.
func (s *Store) CheckAuth(ctx context.Context, force bool) bool {
	s.mu.Lock()
	if s.checking {
		authed := s.authenticated
		s.mu.Unlock()
		return authed
	}
	if !force && !s.shouldCheckLocked() {
		authed := s.authenticated
		s.mu.Unlock()
		return authed
	}
	s.checking = true
	s.mu.Unlock()

	profile, err := s.api.Me(ctx)

	s.mu.Lock()
	s.checking = false
	s.lastCheckedAt = s.now()
	if err != nil {
		s.user = nil
		s.authenticated = false
		s.lastError = err.Error()
	} else {
		s.user = profile
		s.authenticated = true
		s.lastError = ""
	}
	authed := s.authenticated
	s.mu.Unlock()
	s.persist()
	return authed
}

// RefreshToken rotates the session. A failed refresh means the session is
// gone, so it cascades into a sign-out.
func (s *Store) RefreshToken(ctx context.Context) bool {
	if err := s.api.Refresh(ctx); err != nil {
		s.log.Info("session refresh failed, signing out", "error", err)
		s.SignOut(ctx)
		return false
	}
	return true
}

// ShouldCheckAuth reports whether the last check is stale.
func (s *Store) ShouldCheckAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shouldCheckLocked()
}

func (s *Store) shouldCheckLocked() bool {
	return s.lastCheckedAt.IsZero() || s.now().Sub(s.lastCheckedAt) > CheckInterval
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Store) load() {
	if s.path == "" {
		return
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn("discarding corrupt session snapshot", "path", s.path)
		return
	}

	s.mu.Lock()
	s.user = snap.User
	s.authenticated = snap.Authenticated && snap.User != nil
	s.lastCheckedAt = snap.LastCheckedAt
	s.mu.Unlock()
}

func (s *Store) persist() {
	if s.path == "" {
		return
	}

	s.mu.Lock()
	snap := snapshot{
		User:          s.user,
		Authenticated: s.authenticated,
		LastCheckedAt: s.lastCheckedAt,
	}
	s.mu.Unlock()

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn("failed to persist session snapshot", "error", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.log.Warn("failed to persist session snapshot", "error", err)
	}
}
