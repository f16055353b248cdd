package application

import (
	"context"
	"errors"
	"sync"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
)

var errStoreDown = errors.New("store down")

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	failAll error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, id string, upd repo.UserUpdate) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if upd.Email != nil {
		for otherID, other := range f.byID {
			if otherID != id && other.Email == *upd.Email {
				return nil, repo.ErrDuplicateEmail
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.Password = *upd.PasswordHash
	}
	cp := *u
	return &cp, nil
}

type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   []entity.Task
	failAll error
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]entity.Task, 0)
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, t *entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.tasks = append(f.tasks, *t)
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID && f.tasks[i].UserID == t.UserID {
			t.CreatedAt = f.tasks[i].CreatedAt
			f.tasks[i] = *t
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].UserID == ownerID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}
