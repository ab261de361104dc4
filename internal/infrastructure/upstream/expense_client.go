package upstream

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// ExpenseClient is the placeholder adapter for the expense contract. The
// backend does not expose expense endpoints yet, so the adapter fails closed:
// reads resolve empty, writes report the endpoint as unimplemented. It never
// fabricates success.
type ExpenseClient struct{}

func NewExpenseClient() *ExpenseClient {
	return &ExpenseClient{}
}

func (e *ExpenseClient) Expenses(_ context.Context, _ string, _ domain.ExpenseFilters) ([]domain.Expense, error) {
	return []domain.Expense{}, nil
}

func (e *ExpenseClient) ExpenseByID(_ context.Context, _, _ string) (*domain.Expense, error) {
	return nil, domain.ErrEndpointNotImplemented
}

func (e *ExpenseClient) CreateExpense(_ context.Context, _ domain.Expense) (*domain.Expense, error) {
	return nil, domain.ErrEndpointNotImplemented
}

func (e *ExpenseClient) UpdateExpense(_ context.Context, _ string, _ domain.Expense) (*domain.Expense, error) {
	return nil, domain.ErrEndpointNotImplemented
}

func (e *ExpenseClient) DeleteExpense(_ context.Context, _, _ string) error {
	return domain.ErrEndpointNotImplemented
}
