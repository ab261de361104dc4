package domain

import (
	"encoding/json"
	"time"
)

// Role is the closed set of user roles understood by the access gate.
// Unknown upstream values parse to RoleUnknown, which never satisfies an
// admin check.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleUser    Role = "USER"
	RoleUnknown Role = ""
)

// ParseRole normalises an upstream role string into the closed enumeration.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleUser):
		return RoleUser
	default:
		return RoleUnknown
	}
}

// IsAdmin reports whether the role grants the admin bypass.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// UserRecord is the cached profile of the authenticated actor, as returned by
// the upstream user endpoint. RoleDetails and SubscriptionRef are opaque
// upstream blobs; the gateway stores them verbatim and never interprets them.
type UserRecord struct {
	ID              string          `json:"id"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Role            Role            `json:"role"`
	RoleDetails     json.RawMessage `json:"role_details,omitempty"`
	SubscriptionRef json.RawMessage `json:"active_subscription,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LoginCredentials is the payload submitted to the upstream token endpoint.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
