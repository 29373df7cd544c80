// Package token generates opaque single-use tokens: hex tokens for links and
// short numeric codes for hand-typed verification. Both draw from crypto/rand.
package token
