package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fittrack-api/internal/interface/http"
)

// DebugModule exposes runtime counters (expvar) and the health check.
type DebugModule struct {
	Health  *handlers.HealthHandler
	Metrics bool
}

func NewDebugModule(health *handlers.HealthHandler, metrics bool) *DebugModule {
	return &DebugModule{Health: health, Metrics: metrics}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Health)
	if m.Metrics {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
