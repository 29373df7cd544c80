// Package auth implements the authentication protocol: registration with
// email verification, credential login, stateless token refresh, logout and
// the password reset flow.
//
// Sessions are a pair of JWTs carried in httpOnly cookies. Nothing is
// stored server side, so validity is purely cryptographic: a token stays
// usable until its expiry even after logout. The short access lifetime
// bounds that window.
package auth
