package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/application"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	"github.com/oksasatya/go-ddd-todo/pkg/response"
	"github.com/oksasatya/go-ddd-todo/pkg/validation"
)

type AuthHandler struct {
	Svc AccountService
}

func NewAuthHandler(svc AccountService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Password length is not checked here so accounts created under an older
// policy can still sign in.
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signup POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			response.Error(c, http.StatusBadRequest, "invalid payload", nil)
		case errors.Is(err, repo.ErrDuplicateEmail):
			response.Error(c, http.StatusBadRequest, "email already exists", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, toProfile(u), "user created")
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		case errors.Is(err, application.ErrValidation):
			response.Error(c, http.StatusBadRequest, "invalid payload", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, loginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt}, "login successful")
}
