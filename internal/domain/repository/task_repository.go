package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
)

// TaskRepository defines task persistence. Every method that addresses a
// single task takes the owner id and must match on it in the query itself, so
// a task owned by someone else is indistinguishable from a missing one.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	Create(ctx context.Context, t *entity.Task) error
	// Update rewrites title, description and status and fills t.CreatedAt
	// from the stored row.
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id, ownerID string) error
}
