package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/pkg/response"
)

type StatsHandler struct {
	Svc    *application.StatsService
	Logger *logrus.Logger
}

func NewStatsHandler(svc *application.StatsService, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{Svc: svc, Logger: logger}
}

// Dashboard GET /api/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	d, err := h.Svc.Dashboard(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":        d.User.ID,
			"firstName": d.User.FirstName,
			"lastName":  d.User.LastName,
			"email":     d.User.Email,
		},
		"stats":          d.Stats,
		"recentWorkouts": toWorkoutViews(d.RecentWorkouts),
		"activeGoals":    toGoalViews(d.ActiveGoals),
	}, "dashboard", nil)
}

// Stats GET /api/stats
func (h *StatsHandler) Stats(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	s, err := h.Svc.UserStats(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"weekly":           s.Weekly,
		"monthly":          s.Monthly,
		"typeDistribution": s.ByType,
	}, "stats", nil)
}
