package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authsvc/modules/user"
	"github.com/dmitrymomot/authsvc/pkg/jwt"
	"github.com/dmitrymomot/authsvc/pkg/token"
)

const (
	verificationCodeDigits = 6
	verificationTokenTTL   = 24 * time.Hour
	resetTokenBytes        = 32
	resetTokenTTL          = time.Hour
)

// Notifier dispatches the authentication emails. Delivery is best effort:
// implementations must never block the calling flow on provider failures.
type Notifier interface {
	VerificationEmail(email, code string)
	PasswordResetEmail(email, token string)
	PasswordResetSuccessEmail(email string)
}

// Service implements the authentication flows on top of the identity store,
// the token manager and the mail dispatcher.
type Service struct {
	repo   user.Repository
	tokens *jwt.Manager
	mailer Notifier
	log    *slog.Logger
	now    func() time.Time
}

// NewService wires the authentication service.
func NewService(repo user.Repository, tokens *jwt.Manager, mailer Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		log:    log,
		now:    time.Now,
	}
}

// RegisterParams carries the registration input.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterResult is returned on successful registration. The verification
// token is echoed back so clients can drive the verify flow without waiting
// for the email.
type RegisterResult struct {
	User              user.Profile `json:"user"`
	VerificationToken string       `json:"verificationToken"`
}

// Register creates a pending account and dispatches the verification code.
// No session is established until the user signs in.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	hash, err := user.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	code, err := token.NewNumeric(verificationCodeDigits)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	u := &user.User{
		Email:                      params.Email,
		PasswordHash:               hash,
		FirstName:                  params.FirstName,
		LastName:                   params.LastName,
		Status:                     user.StatusPendingVerification,
		VerificationToken:          code,
		VerificationTokenExpiresAt: s.now().Add(verificationTokenTTL),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.mailer.VerificationEmail(u.Email, code)
	s.log.Info("user registered", "user_id", u.ID.Hex())

	return &RegisterResult{User: u.Profile(), VerificationToken: code}, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown email
// and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (user.Profile, jwt.Pair, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, jwt.Pair{}, ErrInvalidCredentials
		}
		return user.Profile{}, jwt.Pair{}, fmt.Errorf("login: %w", err)
	}

	if !user.CheckPassword(u.PasswordHash, password) {
		return user.Profile{}, jwt.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(u.ID.Hex(), u.Email)
	if err != nil {
		return user.Profile{}, jwt.Pair{}, fmt.Errorf("login: %w", err)
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID.Hex(), now); err != nil {
		s.log.Warn("failed to stamp last login", "user_id", u.ID.Hex(), "error", err)
	}
	u.LastLoginAt = now

	return u.Profile(), pair, nil
}

// Refresh validates the refresh token and rotates the pair. The user must
// still resolve; a deleted account cannot refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return jwt.Pair{}, ErrInvalidRefresh
	}

	u, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return jwt.Pair{}, ErrInvalidRefresh
	}

	pair, err := s.tokens.IssuePair(u.ID.Hex(), u.Email)
	if err != nil {
		return jwt.Pair{}, fmt.Errorf("refresh: %w", err)
	}
	return pair, nil
}

// VerifyEmail redeems a verification code and activates the account.
func (s *Service) VerifyEmail(ctx context.Context, code string) (user.Profile, error) {
	u, err := s.repo.FindByVerificationToken(ctx, code)
	if err != nil {
		return user.Profile{}, ErrInvalidToken
	}
	if !u.VerificationTokenValid(code, s.now()) {
		return user.Profile{}, ErrInvalidToken
	}

	u.Status = user.StatusActive
	u.VerificationToken = ""
	u.VerificationTokenExpiresAt = time.Time{}

	if err := s.repo.Update(ctx, u); err != nil {
		return user.Profile{}, fmt.Errorf("verify email: %w", err)
	}

	s.log.Info("email verified", "user_id", u.ID.Hex())
	return u.Profile(), nil
}

// ResendVerification re-issues the verification code for an unverified
// account. Always succeeds from the caller's perspective so the endpoint
// cannot be used to probe for accounts.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("resend verification: %w", err)
	}
	if u.Verified() {
		return nil
	}

	code, err := token.NewNumeric(verificationCodeDigits)
	if err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}

	u.VerificationToken = code
	u.VerificationTokenExpiresAt = s.now().Add(verificationTokenTTL)

	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}

	s.mailer.VerificationEmail(u.Email, code)
	return nil
}

// ForgotPassword starts the reset flow. The caller always gets success so
// responses never reveal whether an account exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("forgot password: %w", err)
	}

	reset, err := token.NewHex(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	u.ResetToken = reset
	u.ResetTokenExpiresAt = s.now().Add(resetTokenTTL)

	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	s.mailer.PasswordResetEmail(u.Email, reset)
	s.log.Info("password reset requested", "user_id", u.ID.Hex())
	return nil
}

// ResetPassword redeems a reset token and replaces the password. The user
// is not signed in afterwards.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	u, err := s.repo.FindByResetToken(ctx, resetToken)
	if err != nil {
		return ErrInvalidToken
	}
	if !u.ResetTokenValid(resetToken, s.now()) {
		return ErrInvalidToken
	}

	hash, err := user.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	u.PasswordHash = hash
	u.ResetToken = ""
	u.ResetTokenExpiresAt = time.Time{}

	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.mailer.PasswordResetSuccessEmail(u.Email)
	s.log.Info("password reset completed", "user_id", u.ID.Hex())
	return nil
}

// Profile returns the public view of the authenticated user.
func (s *Service) Profile(ctx context.Context, userID string) (user.Profile, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidID) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, fmt.Errorf("profile: %w", err)
	}
	return u.Profile(), nil
}

// VerifiedUser resolves the claims email and requires a verified account.
// Used by the strict guard variant.
func (s *Service) VerifiedUser(ctx context.Context, email string) (user.Profile, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return user.Profile{}, ErrUnauthorized
	}
	if !u.Verified() {
		return user.Profile{}, ErrEmailNotVerified
	}
	return u.Profile(), nil
}
