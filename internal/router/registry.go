package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its own routes on the API
// group. Each module owns its limiters and auth requirements.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects middlewares and modules and mounts everything
// under /api in one pass, so route registration order is explicit.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use queues middlewares applied to the whole API group before any
// module routes are mounted.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
