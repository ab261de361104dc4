package ports

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// AuthAPI is the slice of the upstream REST contract the session service
// consumes. Implementations translate transport failures into the domain
// error taxonomy.
type AuthAPI interface {
	// Token performs POST /token/ and returns the granted token pair plus
	// the user profile. A 401 maps to ErrInvalidCredentials.
	Token(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthGrant, error)

	// CurrentUser performs GET /users/users/ with the bearer token. The
	// upstream may answer with an object or an array; implementations take
	// the first element of an array. A 401 maps to ErrSessionExpired.
	CurrentUser(ctx context.Context, accessToken string) (*domain.UserRecord, error)
}

// SubscriptionAPI is the upstream subscription surface.
type SubscriptionAPI interface {
	Subscription(ctx context.Context, userID string) (*domain.SubscriptionRecord, error)
	Create(ctx context.Context, userID, planID string) (*domain.SubscriptionRecord, error)
	UpdateStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) (*domain.SubscriptionRecord, error)
}

// ExpenseAPI is the intended upstream expense contract. No real endpoint
// backs it yet; adapters fail closed (empty reads, explicit errors on writes)
// rather than claiming success.
type ExpenseAPI interface {
	Expenses(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error)
	ExpenseByID(ctx context.Context, userID, id string) (*domain.Expense, error)
	CreateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, expense domain.Expense) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}
