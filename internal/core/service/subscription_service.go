package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

type subscriptionService struct {
	api   ports.SubscriptionAPI
	cache ports.SubscriptionCache
	log   zerolog.Logger
}

// NewSubscriptionService builds the cached subscription query. The cache is
// keyed by user id; mutations invalidate the owning user's entry.
func NewSubscriptionService(api ports.SubscriptionAPI, cache ports.SubscriptionCache, log zerolog.Logger) ports.SubscriptionService {
	return &subscriptionService{api: api, cache: cache, log: log}
}

// ActiveStatus reports whether the user's subscription is ACTIVE. Fetch
// failures resolve to false: absence of proof of an active subscription is
// treated as no subscription.
func (s *subscriptionService) ActiveStatus(ctx context.Context, userID string) bool {
	record, err := s.Subscription(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("subscription: status check failed, failing closed")
		return false
	}
	return record.Active()
}

// State peeks at the cache without fetching.
func (s *subscriptionService) State(ctx context.Context, userID string) domain.SubscriptionState {
	if record, ok := s.cache.Get(ctx, userID); ok {
		return domain.KnownState(record.Active())
	}
	return domain.SubscriptionStatePending
}

// Subscription returns the user's record, consulting the cache first.
func (s *subscriptionService) Subscription(ctx context.Context, userID string) (*domain.SubscriptionRecord, error) {
	if record, ok := s.cache.Get(ctx, userID); ok {
		return record, nil
	}

	record, err := s.api.Subscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, userID, record)
	return record, nil
}

func (s *subscriptionService) Create(ctx context.Context, userID, planID string) (*domain.SubscriptionRecord, error) {
	record, err := s.api.Create(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	s.cache.Drop(ctx, userID)
	return record, nil
}

func (s *subscriptionService) UpdateStatus(ctx context.Context, userID, subscriptionID string, status domain.SubscriptionStatus) (*domain.SubscriptionRecord, error) {
	record, err := s.api.UpdateStatus(ctx, subscriptionID, status)
	if err != nil {
		return nil, err
	}
	s.cache.Drop(ctx, userID)
	return record, nil
}

func (s *subscriptionService) Invalidate(ctx context.Context, userID string) {
	s.cache.Drop(ctx, userID)
}
