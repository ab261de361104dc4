package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// sessionService owns login/logout against the upstream backend and the
// persisted session. It is the only component allowed to mutate the token
// store.
type sessionService struct {
	store  *TokenStore
	api    ports.AuthAPI
	notify ports.Notifier
	log    zerolog.Logger
}

// NewSessionService wires a session service around a request-scoped token
// store.
func NewSessionService(store *TokenStore, api ports.AuthAPI, notify ports.Notifier, log zerolog.Logger) ports.SessionService {
	return &sessionService{store: store, api: api, notify: notify, log: log}
}

// Login exchanges credentials for tokens and persists the full session.
// Failures persist nothing and are reported through the notifier; no error
// escapes this boundary.
func (s *sessionService) Login(ctx context.Context, creds domain.LoginCredentials) bool {
	grant, err := s.api.Token(ctx, creds)
	if err != nil {
		s.notifyLoginFailure(ctx, err)
		return false
	}

	if err := s.store.Set(ctx, grant.Access, grant.Refresh, &grant.User); err != nil {
		s.log.Error().Err(err).Msg("session: persisting credentials failed")
		s.notify.Failure(ctx, domain.KindStorageUnavailable, "Could not save your session. Please try again.")
		return false
	}

	s.notify.Success(ctx, "Login successful!")
	return true
}

func (s *sessionService) notifyLoginFailure(ctx context.Context, err error) {
	kind := domain.Classify(err)
	switch kind {
	case domain.KindInvalidCredentials:
		s.notify.Failure(ctx, kind, "Invalid email or password")
	case domain.KindNetworkUnreachable:
		s.notify.Failure(ctx, kind, "Network error. Please check your connection")
	default:
		s.log.Error().Err(err).Msg("session: login failed unexpectedly")
		s.notify.Failure(ctx, domain.KindUnexpected, "An unexpected error occurred")
	}
}

// Logout clears the persisted session. Idempotent; a storage failure is
// reported but the session is still treated as cleared.
func (s *sessionService) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session: clearing credentials failed")
		s.notify.Failure(ctx, domain.KindStorageUnavailable, "Error during logout")
		return
	}
	s.notify.Success(ctx, "Logged out successfully")
}

// CurrentUser fetches the profile from upstream using the stored token.
func (s *sessionService) CurrentUser(ctx context.Context) (*domain.UserRecord, error) {
	token := s.store.AccessToken(ctx)
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			// The token was rejected upstream: force a local logout so the
			// stale credentials cannot keep reading as authenticated.
			s.Logout(ctx)
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	// Refresh the cached profile so subsequent session snapshots carry the
	// current role without another round trip. Best effort.
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.log.Warn().Err(err).Msg("session: caching refreshed profile failed")
	}
	return user, nil
}

// IsAuthenticated is a pure presence check against the store.
func (s *sessionService) IsAuthenticated(ctx context.Context) bool {
	return s.store.AccessToken(ctx) != ""
}

// Session returns the stored session snapshot.
func (s *sessionService) Session(ctx context.Context) domain.Session {
	return s.store.Session(ctx)
}
