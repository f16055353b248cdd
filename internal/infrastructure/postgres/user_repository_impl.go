package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	"github.com/oksasatya/go-ddd-todo/internal/infrastructure/dbx"
)

type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.Password)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if hasCode(err, codeUniqueViolation) {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, id string, upd repository.UserUpdate) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    password = COALESCE($3, password),
		    updated_at = $4
		WHERE id = $5
		RETURNING id, name, email, password, created_at, updated_at
	`, upd.Name, upd.Email, upd.PasswordHash, time.Now().UTC(), id)

	u, err := scanUser(row)
	if err != nil && hasCode(err, codeUniqueViolation) {
		return nil, repository.ErrDuplicateEmail
	}
	return u, err
}

func scanUser(row *sql.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
