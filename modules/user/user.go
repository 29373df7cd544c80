package user

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Status tracks where an account is in its lifecycle.
type Status string

const (
	// StatusPendingVerification is assigned on registration until the
	// email verification token is redeemed.
	StatusPendingVerification Status = "pending_verification"
	// StatusActive marks a verified account.
	StatusActive Status = "active"
)

// User is the stored account record. Password and the one-time tokens are
// never serialized to JSON; API responses go through Profile.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Email        string        `bson:"email" json:"-"`
	PasswordHash string        `bson:"password" json:"-"`
	FirstName    string        `bson:"first_name,omitempty" json:"-"`
	LastName     string        `bson:"last_name,omitempty" json:"-"`
	Status       Status        `bson:"status" json:"-"`

	VerificationToken          string    `bson:"verification_token,omitempty" json:"-"`
	VerificationTokenExpiresAt time.Time `bson:"verification_token_expires_at,omitempty" json:"-"`
	ResetToken                 string    `bson:"reset_password_token,omitempty" json:"-"`
	ResetTokenExpiresAt        time.Time `bson:"reset_password_token_expires_at,omitempty" json:"-"`

	LastLoginAt time.Time `bson:"last_login_at,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
	UpdatedAt   time.Time `bson:"updated_at" json:"-"`
}

// Verified reports whether the account completed email verification.
func (u *User) Verified() bool {
	return u.Status == StatusActive
}

// VerificationTokenValid reports whether token matches the pending
// verification token and it has not expired.
func (u *User) VerificationTokenValid(token string, now time.Time) bool {
	return u.VerificationToken != "" &&
		u.VerificationToken == token &&
		now.Before(u.VerificationTokenExpiresAt)
}

// ResetTokenValid reports whether token matches the pending password reset
// token and it has not expired.
func (u *User) ResetTokenValid(token string, now time.Time) bool {
	return u.ResetToken != "" &&
		u.ResetToken == token &&
		now.Before(u.ResetTokenExpiresAt)
}

// Profile is the public view of a user returned by the API.
type Profile struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName,omitempty"`
	LastName      string     `json:"lastName,omitempty"`
	EmailVerified bool       `json:"isEmailVerified"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Profile strips credentials and one-time tokens from the record.
func (u *User) Profile() Profile {
	p := Profile{
		ID:            u.ID.Hex(),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		EmailVerified: u.Verified(),
		CreatedAt:     u.CreatedAt,
	}
	if !u.LastLoginAt.IsZero() {
		t := u.LastLoginAt
		p.LastLoginAt = &t
	}
	return p
}
