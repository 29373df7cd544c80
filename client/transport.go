package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// cookieSource supplies the cookies to attach on a retried request. The
// standard library jar satisfies it.
type cookieSource interface {
	Cookies(u *url.URL) []*http.Cookie
}

// retryTransport retries a request exactly once after a transparent session
// refresh when the server answers 401. Requests that are part of the
// credential flow itself are never retried, so a failed login or refresh
// surfaces immediately.
type retryTransport struct {
	inner   http.RoundTripper
	refresh func(ctx context.Context) bool
	jar     cookieSource
}

// noRetryPaths are the endpoints where a 401 is a final answer, not a sign
// of an expired access token.
var noRetryPaths = []string{
	"/api/v1/auth/login",
	"/api/v1/auth/register",
	"/api/v1/auth/logout",
	"/api/v1/auth/refresh-token",
	"/api/v1/auth/forgot-password",
	"/api/v1/auth/reset-password",
	"/api/v1/auth/verify-email",
	"/api/v1/auth/resend-verification",
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || !t.retryable(req) {
		return resp, nil
	}

	if !t.refresh(req.Context()) {
		return resp, nil
	}

	retry, err := t.cloneRequest(req)
	if err != nil {
		return resp, nil
	}

	resp.Body.Close()
	return t.inner.RoundTrip(retry)
}

func (t *retryTransport) retryable(req *http.Request) bool {
	for _, path := range noRetryPaths {
		if strings.HasPrefix(req.URL.Path, path) {
			return false
		}
	}
	return true
}

// cloneRequest rebuilds the request with a fresh body and the cookies that
// came out of the refresh, since the jar only dresses requests at the
// client level, above this transport.
func (t *retryTransport) cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}

	if t.jar != nil {
		clone.Header.Del("Cookie")
		for _, ck := range t.jar.Cookies(req.URL) {
			clone.AddCookie(ck)
		}
	}
	return clone, nil
}
