package domain

// Session is an immutable snapshot of the authenticated actor for one browser
// context. It is created whole by a successful login, replaced whole by the
// next login, and cleared whole by logout; it is never patched in place.
type Session struct {
	AccessToken  string
	RefreshToken string

	// user is the cached profile. Access it through User(), which enforces
	// the invariant that a cached profile without a live access token is
	// treated as absent.
	user *UserRecord
}

// NewSession builds a session snapshot from stored credentials.
func NewSession(accessToken, refreshToken string, user *UserRecord) Session {
	return Session{AccessToken: accessToken, RefreshToken: refreshToken, user: user}
}

// Anonymous is the zero session: no tokens, no user.
func Anonymous() Session { return Session{} }

// IsAuthenticated reports token presence. This is not a validity check; a
// stale token still reads as authenticated until an upstream call rejects it.
func (s Session) IsAuthenticated() bool { return s.AccessToken != "" }

// User returns the cached profile, or nil when absent. A cached profile is
// never trusted without a live access token.
func (s Session) User() *UserRecord {
	if s.AccessToken == "" {
		return nil
	}
	return s.user
}

// Role returns the cached user's role, or RoleUnknown when no trusted profile
// is available.
func (s Session) Role() Role {
	if u := s.User(); u != nil {
		return u.Role
	}
	return RoleUnknown
}

// AuthGrant is the upstream token endpoint's success payload.
type AuthGrant struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    UserRecord `json:"user"`
}
