package sqlite

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
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.CreatedAt

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Password, formatTime(u.CreatedAt), formatTime(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
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
		WHERE id = ?
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE email = ?
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, id string, upd repository.UserUpdate) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = COALESCE(?, name),
		    email = COALESCE(?, email),
		    password = COALESCE(?, password),
		    updated_at = ?
		WHERE id = ?
		RETURNING id, name, email, password, created_at, updated_at
	`, upd.Name, upd.Email, upd.PasswordHash, formatTime(time.Now().UTC()), id)

	u, err := scanUser(row)
	if err != nil && isUniqueViolation(err) {
		return nil, repository.ErrDuplicateEmail
	}
	return u, err
}

func scanUser(row *sql.Row) (*entity.User, error) {
	var (
		u                entity.User
		created, updated string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	var err error
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
