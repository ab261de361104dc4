package ports

import (
	"context"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// TodoRepository persists per-user to-do items.
type TodoRepository interface {
	// List returns the user's items ordered by position.
	List(ctx context.Context, userID string) ([]domain.TodoItem, error)
	Insert(ctx context.Context, item *domain.TodoItem) error
	Update(ctx context.Context, item *domain.TodoItem) error
	FindByID(ctx context.Context, userID, id string) (*domain.TodoItem, error)
	Delete(ctx context.Context, userID, id string) error
	// SetPositions rewrites the position of each listed id in order.
	SetPositions(ctx context.Context, userID string, orderedIDs []string) error
}

// TodoService exposes the to-do widget's operations.
type TodoService interface {
	// List returns the user's items, seeding the default checklist when the
	// user has none.
	List(ctx context.Context, userID string) ([]domain.TodoItem, error)
	Add(ctx context.Context, userID, text string) (*domain.TodoItem, error)
	SetChecked(ctx context.Context, userID, id string, checked bool) (*domain.TodoItem, error)
	Remove(ctx context.Context, userID, id string) error
	// Reorder applies a new display order. The ids must be a permutation of
	// the stored list.
	Reorder(ctx context.Context, userID string, orderedIDs []string) error
}
