package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

type stubSubscriptionAPI struct {
	record *domain.SubscriptionRecord
	err    error

	fetches int
}

func (s *stubSubscriptionAPI) Subscription(context.Context, string) (*domain.SubscriptionRecord, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubSubscriptionAPI) Create(_ context.Context, _, planID string) (*domain.SubscriptionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SubscriptionRecord{ID: "sub-new", PlanID: planID, Status: domain.SubscriptionActive}, nil
}

func (s *stubSubscriptionAPI) UpdateStatus(_ context.Context, id string, status domain.SubscriptionStatus) (*domain.SubscriptionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SubscriptionRecord{ID: id, Status: status}, nil
}

type mapCache struct {
	data map[string]*domain.SubscriptionRecord
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string]*domain.SubscriptionRecord)}
}

func (c *mapCache) Get(_ context.Context, userID string) (*domain.SubscriptionRecord, bool) {
	record, ok := c.data[userID]
	return record, ok
}

func (c *mapCache) Put(_ context.Context, userID string, record *domain.SubscriptionRecord) {
	c.data[userID] = record
}

func (c *mapCache) Drop(_ context.Context, userID string) {
	delete(c.data, userID)
}

func activeRecord() *domain.SubscriptionRecord {
	return &domain.SubscriptionRecord{ID: "sub-1", PlanID: "plan-monthly", Status: domain.SubscriptionActive}
}

func TestActiveStatus_FailsClosed(t *testing.T) {
	cases := []struct {
		name string
		api  *stubSubscriptionAPI
		want bool
	}{
		{"active", &stubSubscriptionAPI{record: activeRecord()}, true},
		{"expired", &stubSubscriptionAPI{record: &domain.SubscriptionRecord{ID: "sub-1", Status: domain.SubscriptionExpired}}, false},
		{"not found", &stubSubscriptionAPI{err: domain.ErrSubscriptionNotFound}, false},
		{"network error", &stubSubscriptionAPI{err: errors.New("dial tcp: connection refused")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSubscriptionService(tc.api, newMapCache(), zerolog.Nop())
			if got := svc.ActiveStatus(context.Background(), "user-1"); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSubscription_CachesPerUser(t *testing.T) {
	api := &stubSubscriptionAPI{record: activeRecord()}
	svc := NewSubscriptionService(api, newMapCache(), zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !svc.ActiveStatus(ctx, "user-1") {
			t.Fatalf("call %d: expected active", i)
		}
	}
	if api.fetches != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", api.fetches)
	}

	// A different user misses the cache.
	svc.ActiveStatus(ctx, "user-2")
	if api.fetches != 2 {
		t.Fatalf("expected per-user caching, got %d fetches", api.fetches)
	}
}

func TestState_PeeksWithoutFetching(t *testing.T) {
	api := &stubSubscriptionAPI{record: activeRecord()}
	svc := NewSubscriptionService(api, newMapCache(), zerolog.Nop())
	ctx := context.Background()

	if got := svc.State(ctx, "user-1"); got != domain.SubscriptionStatePending {
		t.Fatalf("cold cache should read pending, got %v", got)
	}
	if api.fetches != 0 {
		t.Fatalf("State must not fetch, got %d fetches", api.fetches)
	}

	svc.ActiveStatus(ctx, "user-1")
	if got := svc.State(ctx, "user-1"); got != domain.SubscriptionStateActiveKnown {
		t.Fatalf("warm cache should read active, got %v", got)
	}
}

func TestCreate_InvalidatesCache(t *testing.T) {
	api := &stubSubscriptionAPI{record: &domain.SubscriptionRecord{ID: "sub-1", Status: domain.SubscriptionInactive}}
	cache := newMapCache()
	svc := NewSubscriptionService(api, cache, zerolog.Nop())
	ctx := context.Background()

	svc.ActiveStatus(ctx, "user-1")
	if _, ok := cache.data["user-1"]; !ok {
		t.Fatalf("expected cache entry after fetch")
	}

	if _, err := svc.Create(ctx, "user-1", "plan-monthly"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := cache.data["user-1"]; ok {
		t.Fatalf("create must drop the cached record")
	}
}

func TestUpdateStatus_InvalidatesCache(t *testing.T) {
	api := &stubSubscriptionAPI{record: activeRecord()}
	cache := newMapCache()
	svc := NewSubscriptionService(api, cache, zerolog.Nop())
	ctx := context.Background()

	svc.ActiveStatus(ctx, "user-1")

	record, err := svc.UpdateStatus(ctx, "user-1", "sub-1", domain.SubscriptionInactive)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if record.Status != domain.SubscriptionInactive {
		t.Fatalf("unexpected record: %+v", record)
	}
	if _, ok := cache.data["user-1"]; ok {
		t.Fatalf("update must drop the cached record")
	}
}

func TestMutationFailure_KeepsCache(t *testing.T) {
	api := &stubSubscriptionAPI{record: activeRecord()}
	cache := newMapCache()
	svc := NewSubscriptionService(api, cache, zerolog.Nop())
	ctx := context.Background()

	svc.ActiveStatus(ctx, "user-1")
	api.err = errors.New("upstream down")

	if _, err := svc.Create(ctx, "user-1", "plan-monthly"); err == nil {
		t.Fatalf("expected create to fail")
	}
	if _, ok := cache.data["user-1"]; !ok {
		t.Fatalf("failed mutation must not drop the cache")
	}
}
