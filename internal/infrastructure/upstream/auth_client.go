package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// AuthClient consumes the upstream token and user endpoints.
type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// Token performs POST /token/ with the login credentials. A 401 maps to
// ErrInvalidCredentials; any other non-2xx surfaces as ErrUnexpected.
func (a *AuthClient) Token(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthGrant, error) {
	var grant domain.AuthGrant
	err := a.client.do(ctx, http.MethodPost, "/token/", "/token/", creds, &grant, "")
	if err != nil {
		switch statusCode(err) {
		case 0:
			return nil, err
		case http.StatusUnauthorized:
			return nil, domain.ErrInvalidCredentials
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrUnexpected, err)
		}
	}
	if grant.Access == "" {
		return nil, fmt.Errorf("%w: token response missing access token", domain.ErrUnexpected)
	}
	return &grant, nil
}

// CurrentUser performs GET /users/users/ with the bearer token. The endpoint
// answers with either a single object or an array; the first element wins.
// A 401 maps to ErrSessionExpired.
func (a *AuthClient) CurrentUser(ctx context.Context, accessToken string) (*domain.UserRecord, error) {
	var raw json.RawMessage
	err := a.client.do(ctx, http.MethodGet, "/users/users/", "/users/users/", nil, &raw, accessToken)
	if err != nil {
		switch statusCode(err) {
		case 0:
			return nil, err
		case http.StatusUnauthorized:
			return nil, domain.ErrSessionExpired
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrUnexpected, err)
		}
	}
	return decodeUser(raw)
}

func decodeUser(raw json.RawMessage) (*domain.UserRecord, error) {
	trimmed := string(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var users []domain.UserRecord
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("%w: decode user list: %v", domain.ErrUnexpected, err)
		}
		if len(users) == 0 {
			return nil, fmt.Errorf("%w: empty user list", domain.ErrUnexpected)
		}
		return &users[0], nil
	}

	var user domain.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", domain.ErrUnexpected, err)
	}
	return &user, nil
}
