package modules

import (
	"context"
	"database/sql"
	"encoding/json"
	"expvar"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/container"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
	"github.com/oksasatya/go-ddd-todo/pkg/response"
)

// metricsPrefix selects the application counters; runtime vars such as
// cmdline and memstats are never served.
const metricsPrefix = "todo_"

// DebugModule exposes GET /healthz and, when enabled, GET /api/debug/vars.
type DebugModule struct {
	DB *sql.DB
}

func NewDebugModule(db *sql.DB) *DebugModule { return &DebugModule{DB: db} }

func (m *DebugModule) Register(public, api *gin.RouterGroup) {
	public.GET("/healthz", m.health)

	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		rl := Limit(120, middleware.KeyByIP())
		api.GET("/debug/vars", rl, vars)
	}
}

func vars(c *gin.Context) {
	out := map[string]json.RawMessage{}
	expvar.Do(func(kv expvar.KeyValue) {
		if strings.HasPrefix(kv.Key, metricsPrefix) {
			out[kv.Key] = json.RawMessage(kv.Value.String())
		}
	})
	c.JSON(http.StatusOK, out)
}

func (m *DebugModule) health(c *gin.Context) {
	if m.DB == nil {
		response.Error(c, http.StatusServiceUnavailable, "store unavailable", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := m.DB.PingContext(ctx); err != nil {
		helpers.LogError(container.GetLogger(), "health check failed", err, nil)
		response.Error(c, http.StatusServiceUnavailable, "store unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"store": "ok", "driver": container.Driver()}, "healthy")
}
