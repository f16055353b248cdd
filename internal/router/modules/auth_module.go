package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-todo/internal/interface/http"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
)

// AuthModule serves the two unauthenticated entry points.
// Public: POST /auth/signup, POST /auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(public, _ *gin.RouterGroup) {
	signupLimiter := Limit(10, middleware.KeyByIPAndPath()) // 10 req/min per IP
	loginLimiter := Limit(10, middleware.KeyByIPAndPath())

	public.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	public.POST("/auth/login", loginLimiter, m.Handler.Login)
}
