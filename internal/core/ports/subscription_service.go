package ports

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// SubscriptionService answers "does this user have an active subscription",
// cached per user id, failing closed on any fetch error.
type SubscriptionService interface {
	// ActiveStatus resolves the user's subscription and reports whether it is
	// ACTIVE. Returns false and never an error on fetch failure.
	ActiveStatus(ctx context.Context, userID string) bool

	// State peeks at the cache without fetching. Returns the pending state on
	// a cache miss so the gate can render a loading decision.
	State(ctx context.Context, userID string) domain.SubscriptionState

	// Subscription fetches (through the cache) the full record.
	Subscription(ctx context.Context, userID string) (*domain.SubscriptionRecord, error)

	// Create provisions a subscription and invalidates the user's cache entry.
	Create(ctx context.Context, userID, planID string) (*domain.SubscriptionRecord, error)

	// UpdateStatus mutates a subscription's status and invalidates the
	// owning user's cache entry.
	UpdateStatus(ctx context.Context, userID, subscriptionID string, status domain.SubscriptionStatus) (*domain.SubscriptionRecord, error)

	// Invalidate drops the cached record for a user id.
	Invalidate(ctx context.Context, userID string)
}

// SubscriptionCache stores resolved subscription records per user id.
// Ok is false on a miss. Implementations must not fail the caller on cache
// errors; a broken cache degrades to misses.
type SubscriptionCache interface {
	Get(ctx context.Context, userID string) (record *domain.SubscriptionRecord, ok bool)
	Put(ctx context.Context, userID string, record *domain.SubscriptionRecord)
	Drop(ctx context.Context, userID string)
}
