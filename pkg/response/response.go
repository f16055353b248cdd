package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope. Data is always present so an empty
// list encodes as [].
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes data inside the envelope and returns what was written.
func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	}
	ctx.JSON(status, resp)
	return resp
}

func build(ctx *gin.Context, status int, message string, err interface{}) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return ErrorResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}

// Error writes a failure envelope. err carries client-safe details only.
func Error(ctx *gin.Context, status int, message string, err interface{}) ErrorResponse {
	resp := build(ctx, status, message, err)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	resp := build(ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}
