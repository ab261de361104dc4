package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cfo-web/finance-gateway/internal/api/metrics"
)

// Redirector is the boundary route gate. It runs before any page code with
// access to the request cookies only, and checks nothing but cookie presence:
// it exists to avoid a flash of protected content before the real access gate
// runs, not to enforce security.
type Redirector struct {
	authOnly  []string
	protected []string
	skipped   []string
}

// NewRedirector builds the redirector with the dashboard's route groups:
// auth-only pages bounce authenticated visitors to /finance, protected pages
// bounce anonymous visitors to /login. API, metrics, health, and swagger
// paths pass through untouched.
func NewRedirector() *Redirector {
	return &Redirector{
		authOnly:  []string{"/login", "/register"},
		protected: []string{"/dashboard", "/admin", "/finance"},
		skipped:   []string{"/api", "/metrics", "/health", "/swagger"},
	}
}

func matches(path string, patterns []string) bool {
	for _, p := range patterns {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func (r *Redirector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if matches(path, r.skipped) {
				return next(c)
			}

			hasToken := false
			if cookie, err := c.Request().Cookie("access_token"); err == nil && cookie.Value != "" {
				hasToken = true
			}

			if matches(path, r.protected) && !hasToken {
				metrics.RedirectsTotal.WithLabelValues("login").Inc()
				return c.Redirect(http.StatusFound, "/login")
			}
			if matches(path, r.authOnly) && hasToken {
				metrics.RedirectsTotal.WithLabelValues("finance").Inc()
				return c.Redirect(http.StatusFound, "/finance")
			}

			return next(c)
		}
	}
}
