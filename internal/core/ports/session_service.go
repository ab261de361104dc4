package ports

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// SessionService owns the login/logout calls to the upstream backend and the
// persisted session. Login and Logout never surface raw errors: failures are
// converted into the boolean result plus a notification.
type SessionService interface {
	// Login exchanges credentials for tokens upstream and persists them.
	// Returns false, persisting nothing, on any failure.
	Login(ctx context.Context, creds domain.LoginCredentials) bool

	// Logout clears the persisted session. Idempotent: logging out while
	// logged out is a no-op success. Local state is treated as cleared even
	// when a storage backend fails.
	Logout(ctx context.Context)

	// CurrentUser fetches the authenticated user's profile upstream.
	// Fails with ErrUnauthenticated when no token is present, with
	// ErrSessionExpired (after forcing a logout) when upstream rejects the
	// token, and with ErrNetworkUnreachable on transport failure.
	CurrentUser(ctx context.Context) (*domain.UserRecord, error)

	// IsAuthenticated reports token presence in the store. No network call;
	// a stale token still reads as authenticated.
	IsAuthenticated(ctx context.Context) bool

	// Session returns the current session snapshot from the store.
	Session(ctx context.Context) domain.Session
}
