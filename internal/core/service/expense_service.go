package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

type expenseService struct {
	api ports.ExpenseAPI
	log zerolog.Logger
}

// NewExpenseService fronts the upstream expense contract. The summary
// aggregation runs locally; everything else passes through.
func NewExpenseService(api ports.ExpenseAPI, log zerolog.Logger) ports.ExpenseService {
	return &expenseService{api: api, log: log}
}

func (s *expenseService) List(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error) {
	return s.api.Expenses(ctx, userID, filters)
}

func (s *expenseService) Get(ctx context.Context, userID, id string) (*domain.Expense, error) {
	return s.api.ExpenseByID(ctx, userID, id)
}

func (s *expenseService) Create(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	return s.api.CreateExpense(ctx, expense)
}

func (s *expenseService) Update(ctx context.Context, id string, expense domain.Expense) (*domain.Expense, error) {
	return s.api.UpdateExpense(ctx, id, expense)
}

func (s *expenseService) Delete(ctx context.Context, userID, id string) error {
	return s.api.DeleteExpense(ctx, userID, id)
}

// Summary aggregates the filtered expense list into totals and per-dimension
// breakdowns. An empty source yields an empty (not nil-mapped) summary.
func (s *expenseService) Summary(ctx context.Context, userID string, filters domain.ExpenseFilters) (*domain.ExpenseSummary, error) {
	expenses, err := s.api.Expenses(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExpenseSummary{
		ByCategory:      make(map[string]float64),
		ByLocation:      make(map[string]float64),
		ByPaymentMethod: make(map[string]float64),
		ByCreditCard:    make(map[string]float64),
		ByInstallment:   make(map[string]float64),
	}

	for _, e := range expenses {
		summary.TotalExpenses += e.Value
		summary.ByCategory[string(e.Category)] += e.Value
		summary.ByPaymentMethod[string(e.PaymentMethod)] += e.Value
		if e.Location != "" {
			summary.ByLocation[e.Location] += e.Value
		}
		if e.CreditCardID != "" {
			summary.ByCreditCard[e.CreditCardID] += e.Value
		}
		if e.Installment != nil {
			summary.TotalInstallments++
			key := fmt.Sprintf("%d/%d", e.Installment.Current, e.Installment.Total)
			summary.ByInstallment[key] += e.Value
		}
	}

	return summary, nil
}
