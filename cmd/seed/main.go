package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-todo/config"
	"github.com/oksasatya/go-ddd-todo/internal/application"
	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-todo/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/go-ddd-todo/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	var (
		users repo.UserRepository
		tasks repo.TaskRepository
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		db := pginfra.OpenDB(pool)
		defer func() { _ = db.Close() }()
		users, tasks = pginfra.NewUserRepository(db), pginfra.NewTaskRepository(db)
	default:
		db, err := sqliteinfra.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open db: %v", err)
		}
		defer func() { _ = db.Close() }()
		if err := sqliteinfra.Migrate(db, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		users, tasks = sqliteinfra.NewUserRepository(db), sqliteinfra.NewTaskRepository(db)
	}

	userSvc := application.NewUserService(users, helpers.NewJWTManager(cfg.SigningSecret(), cfg.TokenTTL), logger)
	taskSvc := application.NewTaskService(tasks, logger)

	u, err := userSvc.Signup(ctx, application.SignupInput{Name: cfg.SeedName, Email: cfg.SeedEmail, Password: cfg.SeedPassword})
	switch {
	case errors.Is(err, repo.ErrDuplicateEmail):
		existing, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cfg.SeedEmail)))
		if err != nil {
			log.Fatalf("failed to load existing seed user: %v", err)
		}
		fmt.Printf("seed user already present: id=%s email=%s\n", existing.ID, existing.Email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", u.ID, u.Email, u.Name, cfg.SeedPassword)

	who := entity.Identity{UserID: u.ID}
	t, err := taskSvc.Create(ctx, who, application.TaskInput{
		Title:       "Try the API",
		Description: "Log in, list your todos, then mark this one done.",
	})
	if err != nil {
		log.Fatalf("failed to seed task: %v", err)
	}
	fmt.Printf("seeded task: id=%s title=%q status=%s\n", t.ID, t.Title, t.Status)
}
