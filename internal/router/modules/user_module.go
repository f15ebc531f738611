package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fittrack-api/internal/interface/http"
	"github.com/oksasatya/fittrack-api/internal/interface/middleware"
)

// UserModule wires the per-user tracking endpoints. Every route requires an active user.
type UserModule struct {
	Gate     *middleware.Gate
	Profile  *handlers.ProfileHandler
	Workouts *handlers.WorkoutHandler
	Goals    *handlers.GoalHandler
	Stats    *handlers.StatsHandler
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Gate.Require(middleware.Authenticated()))
	{
		auth.GET("/dashboard", m.Stats.Dashboard)
		auth.GET("/stats", m.Stats.Stats)

		auth.GET("/profile", m.Profile.Get)
		auth.PUT("/profile", m.Profile.Update)

		auth.GET("/workouts", m.Workouts.List)
		auth.POST("/workouts", m.Workouts.Create)

		auth.GET("/goals", m.Goals.List)
		auth.POST("/goals", m.Goals.Create)
		auth.PUT("/goals/:id", m.Goals.Update)
		auth.DELETE("/goals/:id", m.Goals.Delete)
	}
}
