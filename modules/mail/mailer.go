package mail

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Mailer composes and sends the authentication emails.
type Mailer struct {
	sender Sender
	cfg    Config
}

// NewMailer wraps a Sender with the message templates.
func NewMailer(sender Sender, cfg Config) *Mailer {
	return &Mailer{sender: sender, cfg: cfg}
}

// SendVerificationEmail delivers the 6-digit email verification code.
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, code string) error {
	body, err := renderTemplate("verification", templateData{
		AppName: m.cfg.AppName,
		Code:    code,
	})
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, SendParams{
		SendTo:   email,
		Subject:  fmt.Sprintf("Verify your email for %s", m.cfg.AppName),
		BodyHTML: body,
		Tag:      "email-verification",
	})
}

// SendPasswordResetEmail delivers the password reset link.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	body, err := renderTemplate("password_reset", templateData{
		AppName:  m.cfg.AppName,
		ResetURL: m.resetURL(token),
	})
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, SendParams{
		SendTo:   email,
		Subject:  fmt.Sprintf("Reset your %s password", m.cfg.AppName),
		BodyHTML: body,
		Tag:      "password-reset",
	})
}

// SendPasswordResetSuccessEmail notifies the user their password changed.
func (m *Mailer) SendPasswordResetSuccessEmail(ctx context.Context, email string) error {
	body, err := renderTemplate("password_reset_success", templateData{
		AppName: m.cfg.AppName,
	})
	if err != nil {
		return err
	}

	return m.sender.Send(ctx, SendParams{
		SendTo:   email,
		Subject:  fmt.Sprintf("Your %s password was changed", m.cfg.AppName),
		BodyHTML: body,
		Tag:      "password-reset-success",
	})
}

func (m *Mailer) resetURL(token string) string {
	base := strings.TrimRight(m.cfg.FrontendURL, "/")
	return base + "/auth/reset-password?token=" + url.QueryEscape(token)
}
