// Package cookie provides an HTTP cookie manager with secure defaults:
// httpOnly, sameSite=lax, path=/. A single manager carries the attribute set
// used for both writing and clearing cookies, which keeps deletion attributes
// consistent with the ones used at set time.
package cookie
