package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// SubscriptionClient consumes the upstream subscription endpoints.
type SubscriptionClient struct {
	client *Client
}

func NewSubscriptionClient(client *Client) *SubscriptionClient {
	return &SubscriptionClient{client: client}
}

// Subscription performs GET /subscriptions/{userId}.
func (s *SubscriptionClient) Subscription(ctx context.Context, userID string) (*domain.SubscriptionRecord, error) {
	var record domain.SubscriptionRecord
	err := s.client.do(ctx, http.MethodGet, "/subscriptions/"+userID, "/subscriptions/{userId}", nil, &record, "")
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Create performs POST /subscriptions.
func (s *SubscriptionClient) Create(ctx context.Context, userID, planID string) (*domain.SubscriptionRecord, error) {
	body := map[string]string{"userId": userID, "planId": planID}
	var record domain.SubscriptionRecord
	if err := s.client.do(ctx, http.MethodPost, "/subscriptions", "/subscriptions", body, &record, ""); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus performs PATCH /subscriptions/{subscriptionId}/status.
func (s *SubscriptionClient) UpdateStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) (*domain.SubscriptionRecord, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown subscription status %q", domain.ErrUnexpected, status)
	}
	body := map[string]string{"status": string(status)}
	var record domain.SubscriptionRecord
	path := "/subscriptions/" + subscriptionID + "/status"
	if err := s.client.do(ctx, http.MethodPatch, path, "/subscriptions/{id}/status", body, &record, ""); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &record, nil
}
