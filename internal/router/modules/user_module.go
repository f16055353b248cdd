package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-todo/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
)

// UserModule wires the authenticated profile routes.
// Protected: GET /api/profile, PUT /api/profile
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.TokenVerifier
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenVerifier) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(_, api *gin.RouterGroup) {
	auth := api.Group("/profile")
	auth.Use(middleware.Auth(m.Tokens))
	auth.Use(Limit(120, middleware.KeyByUserID()))
	{
		auth.GET("", m.Handler.GetProfile)
		auth.PUT("", m.Handler.UpdateProfile)
	}
}
