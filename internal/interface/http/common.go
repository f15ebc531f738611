package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fittrack-api/internal/interface/middleware"
	"github.com/oksasatya/fittrack-api/pkg/response"
	"github.com/oksasatya/fittrack-api/pkg/validation"
)

// identity returns the caller set by the auth gate, writing a 401 when the route was left unguarded.
func identity(c *gin.Context) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, middleware.MsgMissingCredential, nil)
	}
	return id, ok
}

// bindJSON binds and validates the body, writing a 400 with field details on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}
