package auth

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/authsvc/pkg/cookie"
	"github.com/dmitrymomot/authsvc/pkg/jwt"
)

const (
	// AccessTokenCookie is the cookie carrying the short-lived access token.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie is the cookie carrying the long-lived refresh token.
	RefreshTokenCookie = "refreshToken"
)

// Transport moves token pairs between the service and the browser as
// httpOnly cookies. Tokens are never written to response bodies.
type Transport struct {
	cookies    *cookie.Manager
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTransport builds the cookie transport. The refresh cookie must outlive
// the access cookie, otherwise the silent refresh flow breaks as soon as the
// access token expires.
func NewTransport(cookies *cookie.Manager, accessTTL, refreshTTL time.Duration) (*Transport, error) {
	if refreshTTL <= accessTTL {
		return nil, ErrCookieLifetime
	}

	return &Transport{
		cookies:    cookies,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// SetSession attaches both token cookies to the response.
func (t *Transport) SetSession(w http.ResponseWriter, pair jwt.Pair) {
	t.cookies.Set(w, AccessTokenCookie, pair.AccessToken,
		cookie.WithMaxAge(int(t.accessTTL.Seconds())))
	t.cookies.Set(w, RefreshTokenCookie, pair.RefreshToken,
		cookie.WithMaxAge(int(t.refreshTTL.Seconds())))
}

// Clear removes both token cookies.
func (t *Transport) Clear(w http.ResponseWriter) {
	t.cookies.Delete(w, AccessTokenCookie)
	t.cookies.Delete(w, RefreshTokenCookie)
}

// AccessToken reads the access token cookie.
func (t *Transport) AccessToken(r *http.Request) (string, error) {
	value, err := t.cookies.Get(r, AccessTokenCookie)
	if err != nil {
		return "", ErrMissingToken
	}
	return value, nil
}

// RefreshToken reads the refresh token cookie.
func (t *Transport) RefreshToken(r *http.Request) (string, error) {
	value, err := t.cookies.Get(r, RefreshTokenCookie)
	if err != nil {
		return "", ErrMissingToken
	}
	return value, nil
}
