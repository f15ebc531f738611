package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB     Pinger
	Env    string
	Logger *logrus.Logger
}

func NewHealthHandler(db Pinger, env string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{DB: db, Env: env, Logger: logger}
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("health check: database unreachable")
		}
		response.Error[any](c, http.StatusInternalServerError, "service unavailable", gin.H{"database": "disconnected"})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"database":    "connected",
		"environment": h.Env,
	}, "ok", nil)
}
