package user

import "errors"

var (
	ErrNotFound       = errors.New("user: not found")
	ErrDuplicateEmail = errors.New("user: email already registered")
	ErrInvalidID      = errors.New("user: invalid id")
	ErrHashingFailed  = errors.New("user: password hashing failed")
)
