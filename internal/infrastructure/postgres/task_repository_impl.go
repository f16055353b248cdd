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

type TaskRepository struct {
	db dbx.DBTX
}

func NewTaskRepository(db dbx.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, status, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var (
			t      entity.Task
			status string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Status = entity.TaskStatus(status)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (id, title, description, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, t.ID, t.Title, t.Description, string(t.Status), t.UserID)

	err := row.Scan(&t.CreatedAt, &t.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case hasCode(err, codeForeignKeyViolation):
		return repository.ErrNotFound
	case hasCode(err, codeCheckViolation):
		return repository.ErrInvalidStatus
	default:
		return fmt.Errorf("insert task: %w", err)
	}
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING created_at
	`, t.Title, t.Description, string(t.Status), t.UpdatedAt, t.ID, t.UserID).Scan(&t.CreatedAt)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return repository.ErrNotFound
	case hasCode(err, codeCheckViolation):
		return repository.ErrInvalidStatus
	default:
		return fmt.Errorf("update task: %w", err)
	}
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
