package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
	"github.com/cfo-web/finance-gateway/internal/infrastructure/db/redis"
)

type noopAuthAPI struct{}

func (noopAuthAPI) Token(context.Context, domain.LoginCredentials) (*domain.AuthGrant, error) {
	return nil, domain.ErrNetworkUnreachable
}

func (noopAuthAPI) CurrentUser(context.Context, string) (*domain.UserRecord, error) {
	return nil, domain.ErrNetworkUnreachable
}

func newResolverFixture(t *testing.T) (*SessionResolver, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionResolver(client, noopAuthAPI{}, false, zerolog.Nop()), client
}

func TestResolver_MintsSessionID(t *testing.T) {
	resolver, _ := newResolverFixture(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := resolver.Middleware()(func(c echo.Context) error {
		if SessionService(c) == nil {
			t.Fatalf("session service not set")
		}
		if Notices(c) == nil {
			t.Fatalf("notice collector not set")
		}
		if CurrentSession(c).IsAuthenticated() {
			t.Fatalf("fresh session should be anonymous")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var sid *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" {
			sid = cookie
		}
	}
	if sid == nil || sid.Value == "" {
		t.Fatalf("session_id cookie not minted")
	}
	if !sid.HttpOnly || sid.SameSite != http.SameSiteStrictMode {
		t.Fatalf("unexpected cookie attributes: %+v", sid)
	}
}

func TestResolver_ReusesExistingSessionID(t *testing.T) {
	resolver, _ := newResolverFixture(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sid-existing"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := resolver.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" {
			t.Fatalf("existing session id must not be re-minted")
		}
	}
}

func TestResolver_SessionScopedToCookie(t *testing.T) {
	resolver, client := newResolverFixture(t)
	e := echo.New()

	// Seed a server-side session record under sid-1, the way a login on an
	// earlier request would have.
	ctx := context.Background()
	store := redis.NewCredentialStore(client, "sid-1")
	if err := store.Set(ctx, ports.KeyAccessToken, "acc"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	run := func(sid string) domain.Session {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sid})
		c := e.NewContext(req, httptest.NewRecorder())

		var sess domain.Session
		handler := resolver.Middleware()(func(c echo.Context) error {
			sess = CurrentSession(c)
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("request sid=%s: %v", sid, err)
		}
		return sess
	}

	if !run("sid-1").IsAuthenticated() {
		t.Fatalf("sid-1 should see the seeded credentials")
	}
	if run("sid-2").IsAuthenticated() {
		t.Fatalf("sid-2 must not inherit sid-1's credentials")
	}
}
