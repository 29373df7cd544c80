// Package client is the Go client for the authentication API plus the
// session bookkeeping a frontend needs: a persisted session store, a
// 45-minute revalidation policy and an HTTP transport that transparently
// refreshes the cookie session once on a 401 before giving up.
package client
