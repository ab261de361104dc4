package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/api/notice"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
	"github.com/cfo-web/finance-gateway/internal/core/service"
	"github.com/cfo-web/finance-gateway/internal/infrastructure/cookies"
	"github.com/cfo-web/finance-gateway/internal/infrastructure/db/redis"
)

// Echo context keys populated by the session resolver.
const (
	CtxSessionService = "session_service"
	CtxNotices        = "notices"

	sessionCookieName   = "session_id"
	sessionCookieMaxAge = 30 * 24 * time.Hour
)

// SessionResolver builds the per-request session machinery: a token store
// fanning out to the Redis session record and the response cookies, and a
// session service bound to it. Handlers and the gate read both from the
// request context.
type SessionResolver struct {
	rdb    *goredis.Client
	auth   ports.AuthAPI
	secure bool
	log    zerolog.Logger
}

func NewSessionResolver(rdb *goredis.Client, auth ports.AuthAPI, secure bool, log zerolog.Logger) *SessionResolver {
	return &SessionResolver{rdb: rdb, auth: auth, secure: secure, log: log}
}

// Middleware wires the session service into the request context. A browser
// without a session id gets one minted here; the id scopes the server-side
// credential record and carries no authentication weight of its own.
func (sr *SessionResolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := sr.sessionID(c)

			primary := redis.NewCredentialStore(sr.rdb, sid)
			boundary := cookies.New(c.Response(), c.Request(), sr.secure)
			store := service.NewTokenStore(primary, boundary, sr.log)

			notices := notice.NewCollector()
			c.Set(CtxNotices, notices)
			c.Set(CtxSessionService, service.NewSessionService(store, sr.auth, notices, sr.log))

			return next(c)
		}
	}
}

func (sr *SessionResolver) sessionID(c echo.Context) string {
	if cookie, err := c.Request().Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   sr.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return sid
}

// SessionService extracts the request-scoped session service. Panics when the
// resolver did not run; routes using it must sit behind the resolver.
func SessionService(c echo.Context) ports.SessionService {
	return c.Get(CtxSessionService).(ports.SessionService)
}

// Notices extracts the request's notification collector.
func Notices(c echo.Context) *notice.Collector {
	return c.Get(CtxNotices).(*notice.Collector)
}

// CurrentSession is a convenience over SessionService(c).Session.
func CurrentSession(c echo.Context) domain.Session {
	return SessionService(c).Session(c.Request().Context())
}
