package ports

import "context"

// Credential storage keys shared by every backend.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// CredentialStore is one persistence backend for session credentials: the
// server-side session record (read back into application state) or the
// response cookies (read only by the boundary redirector). Get returns the
// empty string, not an error, when the key is absent.
type CredentialStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
