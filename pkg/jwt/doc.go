// Package jwt issues and verifies the access/refresh token pairs used for
// stateless authentication.
//
// Access and refresh tokens are signed with independent HS256 secrets.
// Verifying a token with the wrong manager method fails, which keeps the
// two token kinds from ever being interchangeable. No token state is stored
// server side: a token is valid until its expiry regardless of later
// sign-outs.
package jwt
