package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

// Registry collects the feature modules mounted under /api.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use adds middleware applied to every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts the modules in the order they were added. Unknown routes
// answer with the standard error envelope.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "route_not_found", "route not found", gin.H{"path": c.Request.URL.Path})
	})
}
