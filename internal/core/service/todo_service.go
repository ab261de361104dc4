package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/ports"
)

type todoService struct {
	repo ports.TodoRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewTodoService builds the to-do widget service over a repository.
func NewTodoService(repo ports.TodoRepository, log zerolog.Logger) ports.TodoService {
	return &todoService{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// List returns the user's items in display order, seeding the default
// checklist on first read.
func (s *todoService) List(ctx context.Context, userID string) ([]domain.TodoItem, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	seeded := domain.DefaultTodos()
	now := s.now()
	for i := range seeded {
		seeded[i].ID = uuid.NewString()
		seeded[i].UserID = userID
		seeded[i].CreatedAt = now
		seeded[i].UpdatedAt = now
		if err := s.repo.Insert(ctx, &seeded[i]); err != nil {
			return nil, fmt.Errorf("seed todos: %w", err)
		}
	}
	return seeded, nil
}

// Add appends a new unchecked item at the end of the list.
func (s *todoService) Add(ctx context.Context, userID, text string) (*domain.TodoItem, error) {
	existing, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := &domain.TodoItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Position:  len(existing),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *todoService) SetChecked(ctx context.Context, userID, id string, checked bool) (*domain.TodoItem, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.Checked = checked
	item.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *todoService) Remove(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Reorder validates that orderedIDs is a permutation of the stored list and
// rewrites positions accordingly.
func (s *todoService) Reorder(ctx context.Context, userID string, orderedIDs []string) error {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) != len(orderedIDs) {
		return domain.ErrInvalidReorder
	}

	stored := make(map[string]struct{}, len(items))
	for _, item := range items {
		stored[item.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := stored[id]; !ok {
			return domain.ErrInvalidReorder
		}
		if _, dup := seen[id]; dup {
			return domain.ErrInvalidReorder
		}
		seen[id] = struct{}{}
	}

	return s.repo.SetPositions(ctx, userID, orderedIDs)
}
