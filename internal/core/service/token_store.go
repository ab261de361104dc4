package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// TokenStore keeps the access token, refresh token, and cached user record in
// lockstep across two backends: the primary store (server-side session
// record, read back into application state) and the boundary store (response
// cookies, read only by the route redirector).
type TokenStore struct {
	primary  ports.CredentialStore
	boundary ports.CredentialStore
	log      zerolog.Logger
}

func NewTokenStore(primary, boundary ports.CredentialStore, log zerolog.Logger) *TokenStore {
	return &TokenStore{primary: primary, boundary: boundary, log: log}
}

// Set writes all three keys to both backends. Any write failure aborts the
// operation with ErrStorageUnavailable; the caller must not assume partial
// success is a valid state.
func (t *TokenStore) Set(ctx context.Context, accessToken, refreshToken string, user *domain.UserRecord) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode user: %v", domain.ErrStorageUnavailable, err)
	}

	for _, store := range []ports.CredentialStore{t.primary, t.boundary} {
		writes := []struct{ key, value string }{
			{ports.KeyAccessToken, accessToken},
			{ports.KeyRefreshToken, refreshToken},
			{ports.KeyUser, string(userJSON)},
		}
		for _, w := range writes {
			if err := store.Set(ctx, w.key, w.value); err != nil {
				return fmt.Errorf("%w: set %s: %v", domain.ErrStorageUnavailable, w.key, err)
			}
		}
	}
	return nil
}

// UpdateUser refreshes the cached user record in both backends without
// touching the tokens. Used after a live profile fetch.
func (t *TokenStore) UpdateUser(ctx context.Context, user *domain.UserRecord) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode user: %v", domain.ErrStorageUnavailable, err)
	}
	for _, store := range []ports.CredentialStore{t.primary, t.boundary} {
		if err := store.Set(ctx, ports.KeyUser, string(userJSON)); err != nil {
			return fmt.Errorf("%w: set %s: %v", domain.ErrStorageUnavailable, ports.KeyUser, err)
		}
	}
	return nil
}

// Clear removes all three keys from both backends. Removal is best-effort per
// key: every removal is attempted even after a failure, and the joined error
// is reported at the end.
func (t *TokenStore) Clear(ctx context.Context) error {
	var errs []error
	for _, store := range []ports.CredentialStore{t.primary, t.boundary} {
		for _, key := range []string{ports.KeyAccessToken, ports.KeyRefreshToken, ports.KeyUser} {
			if err := store.Delete(ctx, key); err != nil {
				errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, errors.Join(errs...))
	}
	return nil
}

// AccessToken reads the access token from the primary store. An unavailable
// backend reads as absent, never as an error.
func (t *TokenStore) AccessToken(ctx context.Context) string {
	v, err := t.primary.Get(ctx, ports.KeyAccessToken)
	if err != nil {
		t.log.Debug().Err(err).Msg("token store: access token read failed, treating as absent")
		return ""
	}
	return v
}

// User reads the cached user record from the primary store. Absent or
// undecodable records read as nil.
func (t *TokenStore) User(ctx context.Context) *domain.UserRecord {
	v, err := t.primary.Get(ctx, ports.KeyUser)
	if err != nil || v == "" {
		return nil
	}
	var user domain.UserRecord
	if err := json.Unmarshal([]byte(v), &user); err != nil {
		t.log.Warn().Err(err).Msg("token store: cached user record is corrupt, treating as absent")
		return nil
	}
	return &user
}

// Session assembles the current session snapshot from the primary store.
func (t *TokenStore) Session(ctx context.Context) domain.Session {
	access := t.AccessToken(ctx)
	if access == "" {
		return domain.Anonymous()
	}
	refresh, err := t.primary.Get(ctx, ports.KeyRefreshToken)
	if err != nil {
		refresh = ""
	}
	return domain.NewSession(access, refresh, t.User(ctx))
}
