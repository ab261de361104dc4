package cookies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestSet_CookieAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	store := New(rec, httptest.NewRequest(http.MethodGet, "/", nil), true)

	if err := store.Set(context.Background(), ports.KeyAccessToken, "acc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(context.Background(), ports.KeyRefreshToken, "ref"); err != nil {
		t.Fatalf("set: %v", err)
	}

	access := findCookie(t, rec, ports.KeyAccessToken)
	if !access.HttpOnly || !access.Secure || access.SameSite != http.SameSiteStrictMode {
		t.Fatalf("unexpected attributes: %+v", access)
	}
	if access.MaxAge != int(accessTokenMaxAge.Seconds()) {
		t.Fatalf("access max-age: got %d", access.MaxAge)
	}

	refresh := findCookie(t, rec, ports.KeyRefreshToken)
	if refresh.MaxAge != int(refreshTokenMaxAge.Seconds()) {
		t.Fatalf("refresh max-age: got %d", refresh.MaxAge)
	}
}

func TestSet_InsecureInDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	store := New(rec, httptest.NewRequest(http.MethodGet, "/", nil), false)

	_ = store.Set(context.Background(), ports.KeyAccessToken, "acc")
	if findCookie(t, rec, ports.KeyAccessToken).Secure {
		t.Fatalf("secure flag must follow the environment")
	}
}

func TestRoundTrip_JSONValue(t *testing.T) {
	rec := httptest.NewRecorder()
	store := New(rec, httptest.NewRequest(http.MethodGet, "/", nil), false)

	userJSON := `{"id":"user-1","email":"user@cfo.dev","role":"USER"}`
	if err := store.Set(context.Background(), ports.KeyUser, userJSON); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Replay the response cookie on a follow-up request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(findCookie(t, rec, ports.KeyUser))
	reader := New(httptest.NewRecorder(), req, false)

	got, err := reader.Get(context.Background(), ports.KeyUser)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != userJSON {
		t.Fatalf("round trip mangled value: %q", got)
	}
}

func TestGet_AbsentReadsEmpty(t *testing.T) {
	store := New(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), false)

	got, err := store.Get(context.Background(), ports.KeyAccessToken)
	if err != nil || got != "" {
		t.Fatalf("expected empty read, got %q err %v", got, err)
	}
}

func TestDelete_ExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	store := New(rec, httptest.NewRequest(http.MethodGet, "/", nil), false)

	if err := store.Delete(context.Background(), ports.KeyAccessToken); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c := findCookie(t, rec, ports.KeyAccessToken); c.MaxAge != -1 || c.Value != "" {
		t.Fatalf("expected expired cookie, got %+v", c)
	}
}
