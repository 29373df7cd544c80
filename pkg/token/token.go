package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// NewHex returns a cryptographically random token of n bytes encoded as hex.
// Used for password reset links where the token travels in a URL.
func NewHex(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewNumeric returns a cryptographically random numeric code of the given
// number of digits, zero-padded. Used for email verification codes a user
// types by hand.
func NewNumeric(digits int) (string, error) {
	if digits <= 0 || digits > 18 {
		return "", ErrInvalidLength
	}

	max := big.NewInt(1)
	for range digits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
