package ports

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// ExpenseService fronts the upstream expense contract and computes the
// summary aggregation locally.
type ExpenseService interface {
	List(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error)
	Get(ctx context.Context, userID, id string) (*domain.Expense, error)
	Create(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, id string, expense domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, userID, id string) error

	// Summary aggregates the filtered expense list into the dashboard's
	// chart payload.
	Summary(ctx context.Context, userID string, filters domain.ExpenseFilters) (*domain.ExpenseSummary, error)
}
