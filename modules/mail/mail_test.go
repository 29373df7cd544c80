package mail_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/modules/mail"
)

type captureSender struct {
	mu   sync.Mutex
	sent []mail.SendParams
	err  error
}

func (c *captureSender) Send(_ context.Context, params mail.SendParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, params)
	return nil
}

func (c *captureSender) all() []mail.SendParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]mail.SendParams(nil), c.sent...)
}

func testConfig() mail.Config {
	return mail.Config{
		SenderEmail:  "no-reply@example.com",
		SupportEmail: "support@example.com",
		AppName:      "Acme",
		FrontendURL:  "https://app.example.com/",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendParams_Validate(t *testing.T) {
	t.Parallel()

	valid := mail.SendParams{SendTo: "user@example.com", Subject: "Hi", BodyHTML: "<p>hi</p>"}
	assert.NoError(t, valid.Validate())

	cases := []mail.SendParams{
		{Subject: "Hi", BodyHTML: "<p>hi</p>"},
		{SendTo: "not-an-email", Subject: "Hi", BodyHTML: "<p>hi</p>"},
		{SendTo: "user@example.com", BodyHTML: "<p>hi</p>"},
		{SendTo: "user@example.com", Subject: "Hi"},
	}
	for i, tc := range cases {
		assert.ErrorIs(t, tc.Validate(), mail.ErrInvalidParams, "case %d", i)
	}
}

func TestMailer_VerificationEmail(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	m := mail.NewMailer(sender, testConfig())

	require.NoError(t, m.SendVerificationEmail(context.Background(), "user@example.com", "123456"))

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "user@example.com", sent[0].SendTo)
	assert.Equal(t, "email-verification", sent[0].Tag)
	assert.Contains(t, sent[0].Subject, "Acme")
	assert.Contains(t, sent[0].BodyHTML, "123456")
	assert.Contains(t, sent[0].BodyHTML, "24 hours")
}

func TestMailer_PasswordResetEmail(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	m := mail.NewMailer(sender, testConfig())

	require.NoError(t, m.SendPasswordResetEmail(context.Background(), "user@example.com", "tok&en"))

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "password-reset", sent[0].Tag)
	// trailing slash trimmed from the base URL, token query escaped
	assert.Contains(t, sent[0].BodyHTML, "https://app.example.com/auth/reset-password?token=tok%26en")
}

func TestMailer_PasswordResetSuccessEmail(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	m := mail.NewMailer(sender, testConfig())

	require.NoError(t, m.SendPasswordResetSuccessEmail(context.Background(), "user@example.com"))

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "password-reset-success", sent[0].Tag)
	assert.Contains(t, sent[0].BodyHTML, "password")
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := mail.NewDevSender(filepath.Join(dir, "emails"))

	err := sender.Send(context.Background(), mail.SendParams{
		SendTo:   "user@example.com",
		Subject:  "Verify your email",
		BodyHTML: "<p>123456</p>",
		Tag:      "email-verification",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "emails"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".html"):
			htmlFile = e.Name()
		case strings.HasSuffix(e.Name(), ".json"):
			jsonFile = e.Name()
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)
	assert.Contains(t, htmlFile, "email-verification")

	body, err := os.ReadFile(filepath.Join(dir, "emails", htmlFile))
	require.NoError(t, err)
	assert.Contains(t, string(body), "123456")

	meta, err := os.ReadFile(filepath.Join(dir, "emails", jsonFile))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "user@example.com")
}

func TestNewPostmarkSender_InvalidConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  mail.Config
	}{
		{"missing server token", mail.Config{PostmarkAccountToken: "a", SenderEmail: "a@b.co", SupportEmail: "s@b.co"}},
		{"missing account token", mail.Config{PostmarkServerToken: "s", SenderEmail: "a@b.co", SupportEmail: "s@b.co"}},
		{"invalid sender", mail.Config{PostmarkServerToken: "s", PostmarkAccountToken: "a", SenderEmail: "nope", SupportEmail: "s@b.co"}},
		{"invalid support", mail.Config{PostmarkServerToken: "s", PostmarkAccountToken: "a", SenderEmail: "a@b.co", SupportEmail: "nope"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := mail.NewPostmarkSender(tc.cfg)
			assert.ErrorIs(t, err, mail.ErrInvalidConfig)
		})
	}
}

func TestDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("delivers queued emails", func(t *testing.T) {
		t.Parallel()

		sender := &captureSender{}
		d := mail.NewDispatcher(mail.NewMailer(sender, testConfig()), discardLogger(), 8)

		d.VerificationEmail("user@example.com", "123456")
		d.PasswordResetEmail("user@example.com", "deadbeef")
		d.PasswordResetSuccessEmail("user@example.com")
		d.Close()

		sent := sender.all()
		require.Len(t, sent, 3)
		assert.Equal(t, int64(0), d.Dropped())
		assert.Equal(t, int64(0), d.Failed())
	})

	t.Run("send failure is counted, not surfaced", func(t *testing.T) {
		t.Parallel()

		sender := &captureSender{err: errors.New("smtp down")}
		d := mail.NewDispatcher(mail.NewMailer(sender, testConfig()), discardLogger(), 8)

		d.VerificationEmail("user@example.com", "123456")
		d.Close()

		assert.Equal(t, int64(1), d.Failed())
	})

	t.Run("drops after close", func(t *testing.T) {
		t.Parallel()

		sender := &captureSender{}
		d := mail.NewDispatcher(mail.NewMailer(sender, testConfig()), discardLogger(), 8)
		d.Close()

		d.VerificationEmail("user@example.com", "123456")
		assert.Equal(t, int64(1), d.Dropped())
		assert.Empty(t, sender.all())

		// Close is idempotent
		d.Close()
	})

	t.Run("close drains pending queue", func(t *testing.T) {
		t.Parallel()

		sender := &captureSender{}
		d := mail.NewDispatcher(mail.NewMailer(sender, testConfig()), discardLogger(), 32)

		for range 10 {
			d.PasswordResetSuccessEmail("user@example.com")
		}
		d.Close()

		assert.Len(t, sender.all(), 10)
	})

	t.Run("concurrent enqueue", func(t *testing.T) {
		t.Parallel()

		sender := &captureSender{}
		d := mail.NewDispatcher(mail.NewMailer(sender, testConfig()), discardLogger(), 128)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.VerificationEmail("user@example.com", "123456")
			}()
		}
		wg.Wait()
		d.Close()

		assert.Eventually(t, func() bool {
			return len(sender.all())+int(d.Dropped()) == 20
		}, time.Second, 10*time.Millisecond)
	})
}
