package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretLen = 32

// Claims carries the token payload. Subject holds the user ID and Email is
// included so handlers can identify the caller without a lookup.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// Pair bundles the two tokens issued on successful authentication.
// ExpiresIn is the access token lifetime in seconds.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Manager signs and verifies access and refresh tokens with independent
// secrets, so a refresh token can never pass access verification and
// vice versa.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// New creates a Manager. Both secrets must be at least 32 bytes and must
// differ from each other.
func New(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) < minSecretLen {
		return nil, fmt.Errorf("%w: access secret must be at least %d bytes", ErrInvalidSecret, minSecretLen)
	}
	if len(cfg.RefreshSecret) < minSecretLen {
		return nil, fmt.Errorf("%w: refresh secret must be at least %d bytes", ErrInvalidSecret, minSecretLen)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrInvalidSecret)
	}

	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs a short-lived access token for the user.
func (m *Manager) IssueAccessToken(userID, email string) (string, error) {
	return m.issue(m.accessSecret, m.accessTTL, userID, email)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (m *Manager) IssueRefreshToken(userID, email string) (string, error) {
	return m.issue(m.refreshSecret, m.refreshTTL, userID, email)
}

// IssuePair issues a fresh access/refresh token pair.
func (m *Manager) IssuePair(userID, email string) (Pair, error) {
	access, err := m.IssueAccessToken(userID, email)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := m.IssueRefreshToken(userID, email)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

// VerifyAccessToken parses and validates an access token.
func (m *Manager) VerifyAccessToken(token string) (Claims, error) {
	return m.verify(m.accessSecret, token)
}

// VerifyRefreshToken parses and validates a refresh token.
func (m *Manager) VerifyRefreshToken(token string) (Claims, error) {
	return m.verify(m.refreshSecret, token)
}

func (m *Manager) issue(secret []byte, ttl time.Duration, userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return signed, nil
}

func (m *Manager) verify(secret []byte, token string) (Claims, error) {
	var claims Claims
	parsed, err := jwtlib.ParseWithClaims(token, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
