package auth

import (
	"net/http"

	"github.com/dmitrymomot/authsvc/pkg/jwt"
)

// Guard authenticates requests before they reach protected handlers. The
// access token is looked up in the cookie first, then in the Authorization
// header, so browser clients and API clients share the same endpoints.
type Guard struct {
	tokens  *jwt.Manager
	extract jwt.TokenExtractorFunc
	svc     *Service
}

// NewGuard builds the middleware around the token manager. svc is only
// needed for the strict verified-account variant.
func NewGuard(tokens *jwt.Manager, svc *Service) *Guard {
	return &Guard{
		tokens: tokens,
		extract: jwt.ChainExtractors(
			jwt.CookieTokenExtractor(AccessTokenCookie),
			jwt.BearerTokenExtractor,
		),
		svc: svc,
	}
}

// Authenticate verifies the access token and stores its claims in the
// request context.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := g.extract(r)
		if err != nil {
			respondError(w, ErrMissingToken)
			return
		}

		claims, err := g.tokens.VerifyAccessToken(token)
		if err != nil {
			respondError(w, ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(jwt.SetClaims(r.Context(), claims)))
	})
}

// RequireVerified is the strict variant: on top of Authenticate it
// re-resolves the account and rejects unverified or vanished users. Token
// validity alone is not proof the account still exists.
func (g *Guard) RequireVerified(next http.Handler) http.Handler {
	return g.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.ClaimsFromContext(r.Context())
		if !ok {
			respondError(w, ErrUnauthorized)
			return
		}

		if _, err := g.svc.VerifiedUser(r.Context(), claims.Email); err != nil {
			respondError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	}))
}
