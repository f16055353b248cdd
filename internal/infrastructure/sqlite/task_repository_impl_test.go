package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo/internal/domain/repository"
)

func newTask(owner, title string) *entity.Task {
	return &entity.Task{ID: uuid.NewString(), Title: title, Description: "d", Status: entity.StatusPending, UserID: owner}
}

func TestTaskRepository_CreateAndList(t *testing.T) {
	db := setupDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	first := newTask(alice.ID, "first")
	second := newTask(alice.ID, "second")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, newTask(bob.ID, "bob's")))

	tasks, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	for _, tk := range tasks {
		assert.Equal(t, alice.ID, tk.UserID)
		assert.Equal(t, entity.StatusPending, tk.Status)
	}

	again, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, tasks, again, "listing must be stable")
}

func TestTaskRepository_ListEmptyIsNotNil(t *testing.T) {
	repo := NewTaskRepository(setupDB(t))
	tasks, err := repo.ListByOwner(context.Background(), uuid.NewString())
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Empty(t, tasks)
}

func TestTaskRepository_CreateConstraints(t *testing.T) {
	db := setupDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, newTask(uuid.NewString(), "orphan"))
	require.ErrorIs(t, err, repository.ErrNotFound)

	owner := seedUser(t, db, "owner@example.com")
	bad := newTask(owner.ID, "bad status")
	bad.Status = "archived"
	require.ErrorIs(t, repo.Create(ctx, bad), repository.ErrInvalidStatus)
}

func TestTaskRepository_UpdateScopedToOwner(t *testing.T) {
	db := setupDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	task := newTask(alice.ID, "t")
	require.NoError(t, repo.Create(ctx, task))

	foreign := &entity.Task{ID: task.ID, UserID: bob.ID, Title: "hijack", Status: entity.StatusDone}
	require.ErrorIs(t, repo.Update(ctx, foreign), repository.ErrNotFound)

	missing := &entity.Task{ID: uuid.NewString(), UserID: alice.ID, Title: "x", Status: entity.StatusDone}
	require.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)

	own := &entity.Task{ID: task.ID, UserID: alice.ID, Title: "t", Description: "d", Status: entity.StatusDone}
	require.NoError(t, repo.Update(ctx, own))
	assert.True(t, task.CreatedAt.Equal(own.CreatedAt))

	tasks, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, entity.StatusDone, tasks[0].Status)
	assert.Equal(t, "t", tasks[0].Title)
}

func TestTaskRepository_DeleteScopedToOwner(t *testing.T) {
	db := setupDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	task := newTask(alice.ID, "t")
	require.NoError(t, repo.Create(ctx, task))

	require.ErrorIs(t, repo.Delete(ctx, task.ID, bob.ID), repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, uuid.NewString(), alice.ID), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, task.ID, alice.ID))
	require.ErrorIs(t, repo.Delete(ctx, task.ID, alice.ID), repository.ErrNotFound)

	tasks, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskRepository_CreateTimestampsMatchRead(t *testing.T) {
	db := setupDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")

	fresh := newTask(alice.ID, "now")
	require.NoError(t, repo.Create(ctx, fresh))
	zoned := newTask(alice.ID, "zoned")
	zoned.CreatedAt = time.Date(2024, 5, 6, 7, 8, 9, 10, time.FixedZone("UTC+7", 7*3600))
	require.NoError(t, repo.Create(ctx, zoned))

	tasks, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	byID := map[string]entity.Task{tasks[0].ID: tasks[0], tasks[1].ID: tasks[1]}

	for _, created := range []*entity.Task{fresh, zoned} {
		assert.Equal(t, time.UTC, created.CreatedAt.Location())
		want, err := json.Marshal(created.CreatedAt)
		require.NoError(t, err)
		got, err := json.Marshal(byID[created.ID].CreatedAt)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}
