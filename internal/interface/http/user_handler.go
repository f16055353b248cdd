package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/application"
	repo "github.com/oksasatya/go-ddd-todo/internal/domain/repository"
	"github.com/oksasatya/go-ddd-todo/pkg/response"
	"github.com/oksasatya/go-ddd-todo/pkg/validation"
)

type UserHandler struct {
	Svc AccountService
}

func NewUserHandler(svc AccountService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Absent keys stay nil and leave the stored value alone.
type updateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), who)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u), "profile")
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), who, application.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		msg := "failed to update profile"
		switch {
		case errors.Is(err, application.ErrValidation):
			msg = "invalid payload"
		case errors.Is(err, repo.ErrDuplicateEmail):
			msg = "email already exists"
		case errors.Is(err, application.ErrUserNotFound):
			msg = "user not found"
		}
		response.Error(c, http.StatusBadRequest, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u), "profile updated")
}
