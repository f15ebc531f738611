package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fittrack-api/internal/interface/http"
	"github.com/oksasatya/fittrack-api/internal/interface/middleware"
)

// AdminModule mounts the administrative panel under /admin behind the admin-only gate.
type AdminModule struct {
	Gate    *middleware.Gate
	Handler *handlers.AdminHandler
}

func NewAdminModule(gate *middleware.Gate, h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Gate: gate, Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(m.Gate.Require(middleware.AdminOnly()))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.PATCH("/users/:id", m.Handler.UpdateUser)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)
		admin.GET("/stats", m.Handler.Stats)
		admin.GET("/settings", m.Handler.GetSettings)
		admin.POST("/settings", m.Handler.UpdateSettings)
	}
}
