package jwt

import "errors"

var (
	ErrInvalidSecret = errors.New("jwt: invalid secret")
	ErrSigningFailed = errors.New("jwt: signing failed")
	ErrTokenExpired  = errors.New("jwt: token expired")
	ErrTokenInvalid  = errors.New("jwt: token invalid")
	ErrTokenMissing  = errors.New("jwt: token missing")
)
