package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
	ErrInvalidRefresh     = errors.New("auth: invalid refresh token")
	ErrBadRequest         = errors.New("auth: bad request")
	ErrMissingToken       = errors.New("auth: missing token")
	ErrUnauthorized       = errors.New("auth: unauthorized")
	ErrEmailNotVerified   = errors.New("auth: email not verified")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrCookieLifetime     = errors.New("auth: refresh cookie must outlive access cookie")
)
