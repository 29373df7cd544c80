package client

import (
	"context"
	"strings"
	"time"
)

// authRoutePrefix marks the unauthenticated flow routes (sign-in, sign-up,
// reset password). Entering them never triggers a session check, so an
// expired session cannot bounce the user out of the reset flow.
const authRoutePrefix = "/auth/"

// OnRouteEnter runs the stale-session check when the client navigates to a
// protected route. Returns the current authentication state.
func (s *Store) OnRouteEnter(ctx context.Context, path string) bool {
	if strings.HasPrefix(path, authRoutePrefix) {
		return s.Authenticated()
	}

	if s.ShouldCheckAuth() {
		return s.CheckAuth(ctx, false)
	}
	return s.Authenticated()
}

// RunPeriodic revalidates the session on the check interval until ctx is
// cancelled. Ticks while signed out are skipped.
func (s *Store) RunPeriodic(ctx context.Context) {
	ticker := time.NewTicker(CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Authenticated() {
				s.CheckAuth(ctx, true)
			}
		}
	}
}
