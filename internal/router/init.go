package router

import (
	"github.com/oksasatya/go-ddd-todo/config"
	"github.com/oksasatya/go-ddd-todo/internal/application"
	"github.com/oksasatya/go-ddd-todo/internal/container"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-todo/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/go-ddd-todo/internal/infrastructure/sqlite"
	handlers "github.com/oksasatya/go-ddd-todo/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-todo/internal/router/modules"
)

func buildRepos() (repo.UserRepository, repo.TaskRepository) {
	db := container.GetDB()
	if container.Driver() == config.DriverPostgres {
		return pginfra.NewUserRepository(db), pginfra.NewTaskRepository(db)
	}
	return sqliteinfra.NewUserRepository(db), sqliteinfra.NewTaskRepository(db)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	users, tasks := buildRepos()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userSvc := application.NewUserService(users, jwt, logger)
	taskSvc := application.NewTaskService(tasks, logger)

	// softer per-IP limiter shared by everything under /api
	r.Use(modules.Limit(300, middleware.KeyByIP()))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc), jwt))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc), jwt))
	r.Add(modules.NewDebugModule(container.GetDB()))
}
