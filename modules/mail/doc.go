// Package mail composes and delivers the authentication emails: the
// verification code, the password reset link and the password changed
// notice.
//
// Delivery is best effort. The Dispatcher runs sends on a background
// worker with a bounded queue, so a slow or failing email provider can
// never fail a registration or password reset request.
package mail
