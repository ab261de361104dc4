package domain

import "errors"

// Error taxonomy for the gateway. Services catch raw transport and storage
// failures at their boundary and map them onto these sentinels; nothing above
// the service layer ever sees a bare network error.
var (
	// ErrInvalidCredentials is returned when the upstream rejects a login (401).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNetworkUnreachable wraps connection-level failures talking upstream.
	ErrNetworkUnreachable = errors.New("network unreachable")
	// ErrSessionExpired is returned when an authenticated call comes back 401.
	// It forces a local logout.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthenticated is returned when an operation needs a token and none
	// is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrStorageUnavailable wraps failures of a credential persistence backend.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnexpected covers anything the taxonomy does not categorise.
	ErrUnexpected = errors.New("unexpected error")

	ErrAdminRequired         = errors.New("admin access required")
	ErrSubscriptionRequired  = errors.New("active subscription required")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrTodoNotFound          = errors.New("todo not found")
	ErrInvalidReorder        = errors.New("reorder is not a permutation of the stored list")
	ErrEndpointNotImplemented = errors.New("upstream endpoint not implemented")
)

// FailureKind names a taxonomy bucket for user-facing notifications.
type FailureKind string

const (
	KindInvalidCredentials FailureKind = "invalid_credentials"
	KindNetworkUnreachable FailureKind = "network_unreachable"
	KindSessionExpired     FailureKind = "session_expired"
	KindUnauthenticated    FailureKind = "unauthenticated"
	KindStorageUnavailable FailureKind = "storage_unavailable"
	KindUnexpected         FailureKind = "unexpected"
)

// Classify maps an error onto its taxonomy bucket. Unknown errors land in
// KindUnexpected rather than leaking detail to the caller.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrNetworkUnreachable):
		return KindNetworkUnreachable
	case errors.Is(err, ErrSessionExpired):
		return KindSessionExpired
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrStorageUnavailable):
		return KindStorageUnavailable
	default:
		return KindUnexpected
	}
}
