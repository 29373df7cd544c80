package user

import (
	"context"
	"time"
)

// Repository defines the storage operations the auth flows depend on.
type Repository interface {
	// Create inserts a new user. Returns ErrDuplicateEmail when the email
	// is already registered.
	Create(ctx context.Context, u *User) error

	// FindByID returns the user with the given ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the user with the given email or ErrNotFound.
	// Email comparison is case-insensitive; emails are stored lowercased.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByVerificationToken returns the user holding the given email
	// verification token or ErrNotFound.
	FindByVerificationToken(ctx context.Context, token string) (*User, error)

	// FindByResetToken returns the user holding the given password reset
	// token or ErrNotFound.
	FindByResetToken(ctx context.Context, token string) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// UpdateLastLogin stamps the last successful sign-in time.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
