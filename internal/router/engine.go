package router

import (
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fittrack-api/internal/container"
	"github.com/oksasatya/fittrack-api/internal/interface/middleware"
)

// NewEngine builds the gin engine with global middleware and every module mounted under /api.
func NewEngine(c *container.Container) (*gin.Engine, error) {
	cfg := c.Config
	origins := cfg.CORSOrigins()
	if len(origins) == 0 {
		return nil, errors.New("router: CORS_ALLOWED_ORIGINS is empty")
	}

	r := gin.New()
	// ClientIP must not read forwarding headers unless the deployment says so
	if !cfg.TrustProxyHeaders {
		if err := r.SetTrustedProxies(nil); err != nil {
			return nil, err
		}
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r, nil
}
