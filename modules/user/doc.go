// Package user defines the account record, its storage contract and the
// password hashing helpers shared by the authentication flows.
package user
