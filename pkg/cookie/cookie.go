package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager writes and reads HTTP cookies with a set of secure defaults that
// individual calls can override.
type Manager struct {
	defaults Options
}

// Config holds cookie manager configuration.
type Config struct {
	Path     string `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	HTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	// MaxAge is the default cookie lifetime in seconds (7 days).
	MaxAge int `env:"COOKIE_MAX_AGE" envDefault:"604800"`
}

// New creates a cookie manager. Defaults: httpOnly, sameSite=lax, path=/,
// maxAge 7 days. Secure is off by default and should be enabled outside
// development.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		MaxAge:   int(7 * 24 * time.Hour / time.Second),
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// NewFromConfig creates a cookie manager from env-backed configuration.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := make([]Option, 0, 5)
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	configOpts = append(configOpts,
		WithSecure(cfg.Secure),
		WithHTTPOnly(cfg.HTTPOnly),
	)
	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}

// Set writes a cookie using the manager defaults merged with per-call options.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HTTPOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the named cookie value or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete instructs the browser to remove the cookie. Attributes
// (path/domain/sameSite/secure) must match the ones used when setting the
// cookie or browsers will keep the original; the manager defaults guarantee
// that as long as Set and Delete go through the same manager.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HTTPOnly,
		SameSite: m.defaults.SameSite,
	})
}
