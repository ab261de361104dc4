package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

// Default credential lifetimes, matching the cookie expiries on the boundary
// store so the two backends age out together.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// CredentialStore is the server-side half of the session persistence: one
// Redis hash-keyed namespace per browser session. This is the store the
// application reads back; the cookie store is never read past the boundary.
type CredentialStore struct {
	client    *redis.Client
	sessionID string
}

// NewCredentialStore scopes a store to one browser session id.
func NewCredentialStore(client *redis.Client, sessionID string) *CredentialStore {
	return &CredentialStore{client: client, sessionID: sessionID}
}

func (s *CredentialStore) key(field string) string {
	return fmt.Sprintf("session:%s:%s", s.sessionID, field)
}

func ttlFor(field string) time.Duration {
	if field == ports.KeyRefreshToken {
		return RefreshTokenTTL
	}
	// The cached user record lives and dies with the access token.
	return AccessTokenTTL
}

func (s *CredentialStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, ttlFor(key)).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *CredentialStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
