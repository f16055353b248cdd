package router

import "github.com/gin-gonic/gin"

// Registry collects modules and mounts them on the public root group and the
// /api group.
type Registry struct {
	Engine      *gin.Engine
	Public      *gin.RouterGroup
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Public: &engine.RouterGroup, API: engine.Group("/api")}
}

// Use adds middleware to every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.Public, r.API)
	}
}
