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
		WHERE user_id = ?
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var (
			t                entity.Task
			status           string
			created, updated string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &t.UserID, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Status = entity.TaskStatus(status)
		if t.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if t.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	// stored as UTC text; keep the entity identical to what a read returns
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.CreatedAt

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Description, string(t.Status), t.UserID, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return repository.ErrNotFound
	case isCheckViolation(err):
		return repository.ErrInvalidStatus
	default:
		return fmt.Errorf("insert task: %w", err)
	}
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now().UTC()

	var created string
	err := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING created_at
	`, t.Title, t.Description, string(t.Status), formatTime(t.UpdatedAt), t.ID, t.UserID).Scan(&created)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return repository.ErrNotFound
	case err != nil && isCheckViolation(err):
		return repository.ErrInvalidStatus
	case err != nil:
		return fmt.Errorf("update task: %w", err)
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, ownerID)
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
