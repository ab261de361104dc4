// Package cookies implements the request-visible half of the credential
// persistence: tokens mirrored into browser cookies so the boundary
// redirector can act on presence alone. The application never reads these
// back into its own state.
package cookies

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// Cookie lifetimes per credential key.
const (
	accessTokenMaxAge  = 7 * 24 * time.Hour
	refreshTokenMaxAge = 30 * 24 * time.Hour
)

// Store writes credential cookies onto one response and reads them from the
// matching request. Cookies are strict same-site, HTTP-only, and secure
// outside local development.
type Store struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	path   string
}

// New binds a store to one request/response pair.
func New(w http.ResponseWriter, r *http.Request, secure bool) *Store {
	return &Store{w: w, r: r, secure: secure, path: "/"}
}

func maxAgeFor(key string) time.Duration {
	if key == ports.KeyRefreshToken {
		return refreshTokenMaxAge
	}
	return accessTokenMaxAge
}

func (s *Store) Set(_ context.Context, key, value string) error {
	// The user record is JSON; escape so the value survives cookie syntax.
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     s.path,
		MaxAge:   int(maxAgeFor(key).Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Get reads the cookie from the incoming request. Absent cookies read as
// empty, not as an error.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", nil
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value, nil
	}
	return v, nil
}

// Delete expires the cookie on the response.
func (s *Store) Delete(_ context.Context, key string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     s.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}
