package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/modules/auth"
	"github.com/dmitrymomot/authsvc/modules/user"
	"github.com/dmitrymomot/authsvc/pkg/cookie"
	"github.com/dmitrymomot/authsvc/pkg/jwt"
)

const (
	testAccessSecret  = "access-secret-0123456789-0123456789-abc"
	testRefreshSecret = "refresh-secret-0123456789-0123456789-ab"
	testPassword      = "password123"
)

type sentEmail struct {
	kind  string
	email string
	token string
}

// recordingNotifier captures dispatched emails synchronously.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (n *recordingNotifier) VerificationEmail(email, code string) {
	n.record(sentEmail{kind: "verification", email: email, token: code})
}

func (n *recordingNotifier) PasswordResetEmail(email, token string) {
	n.record(sentEmail{kind: "password-reset", email: email, token: token})
}

func (n *recordingNotifier) PasswordResetSuccessEmail(email string) {
	n.record(sentEmail{kind: "password-reset-success", email: email})
}

func (n *recordingNotifier) record(e sentEmail) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, e)
}

func (n *recordingNotifier) all() []sentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentEmail(nil), n.sent...)
}

func (n *recordingNotifier) last() (sentEmail, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentEmail{}, false
	}
	return n.sent[len(n.sent)-1], true
}

type fixture struct {
	repo      *user.MemoryRepository
	tokens    *jwt.Manager
	notifier  *recordingNotifier
	svc       *auth.Service
	transport *auth.Transport
	guard     *auth.Guard
	handler   *auth.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := jwt.New(jwt.Config{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := user.NewMemoryRepository()
	notifier := &recordingNotifier{}
	svc := auth.NewService(repo, tokens, notifier, log)

	transport, err := auth.NewTransport(cookie.New(), tokens.AccessTTL(), tokens.RefreshTTL())
	require.NoError(t, err)

	guard := auth.NewGuard(tokens, svc)

	return &fixture{
		repo:      repo,
		tokens:    tokens,
		notifier:  notifier,
		svc:       svc,
		transport: transport,
		guard:     guard,
		handler:   auth.NewHandler(svc, transport, guard, log),
	}
}

// register creates an account directly through the service and returns the
// created record.
func (f *fixture) register(t *testing.T, email string) *auth.RegisterResult {
	t.Helper()

	result, err := f.svc.Register(context.Background(), auth.RegisterParams{
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)
	return result
}

// verify activates the account created by register.
func (f *fixture) verify(t *testing.T, result *auth.RegisterResult) {
	t.Helper()

	_, err := f.svc.VerifyEmail(context.Background(), result.VerificationToken)
	require.NoError(t, err)
}
