package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

type stubAuthAPI struct {
	grant    *domain.AuthGrant
	tokenErr error

	user    *domain.UserRecord
	userErr error

	userCalls int
}

func (s *stubAuthAPI) Token(context.Context, domain.LoginCredentials) (*domain.AuthGrant, error) {
	if s.tokenErr != nil {
		return nil, s.tokenErr
	}
	return s.grant, nil
}

func (s *stubAuthAPI) CurrentUser(context.Context, string) (*domain.UserRecord, error) {
	s.userCalls++
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

type capturedNotice struct {
	success bool
	kind    domain.FailureKind
	message string
}

type captureNotifier struct {
	notices []capturedNotice
}

func (n *captureNotifier) Success(_ context.Context, message string) {
	n.notices = append(n.notices, capturedNotice{success: true, message: message})
}

func (n *captureNotifier) Failure(_ context.Context, kind domain.FailureKind, message string) {
	n.notices = append(n.notices, capturedNotice{kind: kind, message: message})
}

func (n *captureNotifier) last(t *testing.T) capturedNotice {
	t.Helper()
	if len(n.notices) == 0 {
		t.Fatalf("no notices captured")
	}
	return n.notices[len(n.notices)-1]
}

func newSessionFixture(api ports.AuthAPI) (ports.SessionService, *TokenStore, *stubStore, *captureNotifier) {
	primary := newStubStore()
	store := NewTokenStore(primary, newStubStore(), zerolog.Nop())
	notifier := &captureNotifier{}
	return NewSessionService(store, api, notifier, zerolog.Nop()), store, primary, notifier
}

func TestLogin_SuccessPersistsAndNotifies(t *testing.T) {
	api := &stubAuthAPI{grant: &domain.AuthGrant{
		Access:  "acc",
		Refresh: "ref",
		User:    domain.UserRecord{ID: "user-1", Email: "user@cfo.dev", Role: domain.RoleUser},
	}}
	svc, store, _, notifier := newSessionFixture(api)

	ctx := context.Background()
	if !svc.Login(ctx, domain.LoginCredentials{Email: "user@cfo.dev", Password: "pw"}) {
		t.Fatalf("expected login to succeed")
	}

	sess := store.Session(ctx)
	if sess.AccessToken != "acc" {
		t.Fatalf("access token not persisted: %+v", sess)
	}
	if user := sess.User(); user == nil || user.ID != "user-1" {
		t.Fatalf("user not persisted: %+v", user)
	}

	last := notifier.last(t)
	if !last.success || last.message != "Login successful!" {
		t.Fatalf("unexpected notice: %+v", last)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	api := &stubAuthAPI{tokenErr: domain.ErrInvalidCredentials}
	svc, store, _, notifier := newSessionFixture(api)

	ctx := context.Background()
	if svc.Login(ctx, domain.LoginCredentials{Email: "user@cfo.dev", Password: "wrong"}) {
		t.Fatalf("expected login to fail")
	}
	if store.Session(ctx).IsAuthenticated() {
		t.Fatalf("nothing should be persisted on failure")
	}

	last := notifier.last(t)
	if last.kind != domain.KindInvalidCredentials {
		t.Fatalf("expected invalid_credentials, got %+v", last)
	}
	if last.message != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", last.message)
	}
}

func TestLogin_NetworkFailure(t *testing.T) {
	api := &stubAuthAPI{tokenErr: fmt.Errorf("%w: dial tcp: connection refused", domain.ErrNetworkUnreachable)}
	svc, _, _, notifier := newSessionFixture(api)

	if svc.Login(context.Background(), domain.LoginCredentials{Email: "a@b.c", Password: "x"}) {
		t.Fatalf("expected login to fail")
	}

	last := notifier.last(t)
	if last.kind != domain.KindNetworkUnreachable {
		t.Fatalf("expected network_unreachable, got %+v", last)
	}
	if last.message != "Network error. Please check your connection" {
		t.Fatalf("unexpected message: %q", last.message)
	}
}

func TestLogin_UnexpectedFailure(t *testing.T) {
	api := &stubAuthAPI{tokenErr: errors.New("boom")}
	svc, _, _, notifier := newSessionFixture(api)

	if svc.Login(context.Background(), domain.LoginCredentials{Email: "a@b.c", Password: "x"}) {
		t.Fatalf("expected login to fail")
	}
	if last := notifier.last(t); last.kind != domain.KindUnexpected {
		t.Fatalf("expected unexpected, got %+v", last)
	}
}

func TestLogin_StorageFailure(t *testing.T) {
	api := &stubAuthAPI{grant: &domain.AuthGrant{Access: "acc", Refresh: "ref"}}
	svc, _, primary, notifier := newSessionFixture(api)
	primary.setErr = errors.New("redis down")

	if svc.Login(context.Background(), domain.LoginCredentials{Email: "a@b.c", Password: "x"}) {
		t.Fatalf("expected login to fail on storage error")
	}
	if last := notifier.last(t); last.kind != domain.KindStorageUnavailable {
		t.Fatalf("expected storage_unavailable, got %+v", last)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	api := &stubAuthAPI{grant: &domain.AuthGrant{
		Access: "acc", Refresh: "ref",
		User: domain.UserRecord{ID: "user-1"},
	}}
	svc, store, _, notifier := newSessionFixture(api)
	ctx := context.Background()

	svc.Login(ctx, domain.LoginCredentials{Email: "a@b.c", Password: "x"})
	svc.Logout(ctx)

	if store.Session(ctx).IsAuthenticated() {
		t.Fatalf("session still authenticated after logout")
	}
	if last := notifier.last(t); !last.success || last.message != "Logged out successfully" {
		t.Fatalf("unexpected notice: %+v", last)
	}

	// A second logout against an already-clear store behaves identically.
	svc.Logout(ctx)
	if last := notifier.last(t); !last.success {
		t.Fatalf("repeat logout should still report success: %+v", last)
	}
}

func TestCurrentUser_NoToken(t *testing.T) {
	svc, _, _, _ := newSessionFixture(&stubAuthAPI{})

	_, err := svc.CurrentUser(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCurrentUser_ExpiryForcesLogout(t *testing.T) {
	api := &stubAuthAPI{
		grant:   &domain.AuthGrant{Access: "acc", Refresh: "ref", User: domain.UserRecord{ID: "user-1"}},
		userErr: domain.ErrSessionExpired,
	}
	svc, store, _, _ := newSessionFixture(api)
	ctx := context.Background()

	svc.Login(ctx, domain.LoginCredentials{Email: "a@b.c", Password: "x"})

	_, err := svc.CurrentUser(ctx)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.Session(ctx).IsAuthenticated() {
		t.Fatalf("expired session must be cleared locally")
	}
}

func TestCurrentUser_RefreshesCachedProfile(t *testing.T) {
	api := &stubAuthAPI{
		grant: &domain.AuthGrant{Access: "acc", Refresh: "ref", User: domain.UserRecord{ID: "user-1", Role: domain.RoleUser}},
		user:  &domain.UserRecord{ID: "user-1", Role: domain.RoleAdmin},
	}
	svc, store, _, _ := newSessionFixture(api)
	ctx := context.Background()

	svc.Login(ctx, domain.LoginCredentials{Email: "a@b.c", Password: "x"})

	user, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected upstream profile, got %+v", user)
	}
	if got := store.Session(ctx).Role(); got != domain.RoleAdmin {
		t.Fatalf("cached profile not refreshed, role %v", got)
	}
}

func TestIsAuthenticated_PresenceOnly(t *testing.T) {
	api := &stubAuthAPI{userErr: domain.ErrSessionExpired}
	svc, store, _, _ := newSessionFixture(api)
	ctx := context.Background()

	if svc.IsAuthenticated(ctx) {
		t.Fatalf("empty store should read unauthenticated")
	}

	// Presence of any token string, valid or not, reads as authenticated;
	// validity is only settled by an upstream call.
	if err := store.Set(ctx, "stale-token", "", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !svc.IsAuthenticated(ctx) {
		t.Fatalf("token present, expected authenticated")
	}
	if api.userCalls != 0 {
		t.Fatalf("IsAuthenticated must not call upstream")
	}
}
