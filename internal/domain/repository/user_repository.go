package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
)

// UserUpdate carries the optional fields of a profile update.
// A nil field is left unchanged by the store.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update applies upd and returns the stored row after the change.
	Update(ctx context.Context, id string, upd UserUpdate) (*entity.User, error)
}
