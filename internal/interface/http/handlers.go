package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/application"
	"github.com/oksasatya/go-ddd-todo/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-todo/pkg/response"
)

// AccountService is implemented by *application.UserService.
type AccountService interface {
	Signup(ctx context.Context, in application.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*application.LoginResult, error)
	GetProfile(ctx context.Context, who entity.Identity) (*entity.User, error)
	UpdateProfile(ctx context.Context, who entity.Identity, in application.UpdateProfileInput) (*entity.User, error)
}

// TaskService is implemented by *application.TaskService.
type TaskService interface {
	List(ctx context.Context, who entity.Identity) ([]entity.Task, error)
	Create(ctx context.Context, who entity.Identity, in application.TaskInput) (*entity.Task, error)
	Update(ctx context.Context, who entity.Identity, id string, in application.TaskInput) (*entity.Task, error)
	Delete(ctx context.Context, who entity.Identity, id string) error
}

// profileResponse is the only shape a user leaves the API in.
type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toProfile(u *entity.User) profileResponse {
	return profileResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTask(t *entity.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTasks(ts []entity.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTask(&ts[i]))
	}
	return out
}

// identity reads the caller attached by middleware.Auth and answers 401 when
// the route was wired without it.
func identity(c *gin.Context) (entity.Identity, bool) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing access token", nil)
	}
	return who, ok
}
