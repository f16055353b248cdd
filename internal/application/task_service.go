package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
)

// TaskService runs every task operation on behalf of one Identity; the
// identity's user id is always part of the store predicate.
type TaskService struct {
	Repo   repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(repo repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: repo, Logger: logger}
}

type TaskInput struct {
	Title       string
	Description string
	Status      string // empty means pending
}

func (in TaskInput) toTask() (*entity.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrValidation
	}
	status := entity.StatusPending
	if strings.TrimSpace(in.Status) != "" {
		st, ok := entity.ParseStatus(in.Status)
		if !ok {
			return nil, ErrValidation
		}
		status = st
	}
	return &entity.Task{Title: title, Description: in.Description, Status: status}, nil
}

func (s *TaskService) List(ctx context.Context, who entity.Identity) ([]entity.Task, error) {
	if who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	tasks, err := s.Repo.ListByOwner(ctx, who.UserID)
	if err != nil {
		helpers.LogError(s.Logger, "list tasks failed", err, logrus.Fields{"user_id": who.UserID})
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, who entity.Identity, in TaskInput) (*entity.Task, error) {
	if who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	t, err := in.toTask()
	if err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	t.UserID = who.UserID
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, s.mapStoreError("create task failed", who, err)
	}
	tasksCreatedTotal.Add(1)
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, who entity.Identity, id string, in TaskInput) (*entity.Task, error) {
	if who.UserID == "" {
		return nil, ErrUnauthenticated
	}
	t, err := in.toTask()
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.UserID = who.UserID
	if err := s.Repo.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, s.mapStoreError("update task failed", who, err)
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, who entity.Identity, id string) error {
	if who.UserID == "" {
		return ErrUnauthenticated
	}
	if err := s.Repo.Delete(ctx, id, who.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return s.mapStoreError("delete task failed", who, err)
	}
	tasksDeletedTotal.Add(1)
	return nil
}

func (s *TaskService) mapStoreError(msg string, who entity.Identity, err error) error {
	switch {
	case errors.Is(err, repo.ErrInvalidStatus):
		return ErrValidation
	case errors.Is(err, repo.ErrNotFound):
		// owner row missing on insert
		return ErrUserNotFound
	}
	helpers.LogError(s.Logger, msg, err, logrus.Fields{"user_id": who.UserID})
	return err
}
