package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/application"
	"github.com/oksasatya/go-ddd-todo/pkg/response"
	"github.com/oksasatya/go-ddd-todo/pkg/validation"
)

type TaskHandler struct {
	Svc TaskService
}

func NewTaskHandler(svc TaskService) *TaskHandler {
	return &TaskHandler{Svc: svc}
}

type taskURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,taskstatus"`
}

type updateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,taskstatus"`
}

// taskID answers "task not found" for a malformed id, exactly as for an
// id that matches nothing.
func taskID(c *gin.Context) (string, bool) {
	var uri taskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, http.StatusBadRequest, "task not found", nil)
		return "", false
	}
	return uri.ID, true
}

func (h *TaskHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, application.ErrTaskNotFound):
		response.Error(c, http.StatusBadRequest, "task not found", nil)
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "invalid payload", nil)
	default:
		response.Error(c, http.StatusBadRequest, fallback, nil)
	}
}

// List GET /api/todos
func (h *TaskHandler) List(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	tasks, err := h.Svc.List(c.Request.Context(), who)
	if err != nil {
		h.fail(c, err, "failed to list tasks")
		return
	}
	response.Success(c, http.StatusOK, toTasks(tasks), "tasks")
}

// Create POST /api/todos
func (h *TaskHandler) Create(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), who, application.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.fail(c, err, "failed to create task")
		return
	}
	response.Success(c, http.StatusCreated, toTask(t), "task created")
}

// Update PUT /api/todos/:id
func (h *TaskHandler) Update(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), who, id, application.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.fail(c, err, "failed to update task")
		return
	}
	response.Success(c, http.StatusOK, toTask(t), "task updated")
}

// Delete DELETE /api/todos/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), who, id); err != nil {
		h.fail(c, err, "failed to delete task")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "task deleted")
}
