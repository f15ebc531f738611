package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fittrack-api/pkg/response"
)

// Module is a feature area that mounts its routes under the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and API-wide middleware, then mounts them in order.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) { r.middlewares = append(r.middlewares, mw...) }

func (r *Registry) Add(mods ...Module) { r.modules = append(r.modules, mods...) }

// RegisterAll mounts every module. Unknown routes, including known paths hit
// with an unsupported method, answer 404 with the standard error envelope.
func (r *Registry) RegisterAll() {
	r.API.Use(r.middlewares...)
	for _, m := range r.modules {
		m.Register(r.API)
	}

	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", nil)
	})
}
