package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-todo/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
)

// TaskModule wires the owner-scoped task routes under /api/todos.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  middleware.TokenVerifier
}

func NewTaskModule(h *handlers.TaskHandler, tokens middleware.TokenVerifier) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(_, api *gin.RouterGroup) {
	auth := api.Group("/todos")
	auth.Use(middleware.Auth(m.Tokens))
	auth.Use(Limit(120, middleware.KeyByUserID()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
