package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes a failure envelope, aborts the handler chain and returns it.
func Error[T any](ctx *gin.Context, status int, message string, details interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Error:     message,
		Details:   details,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}

// FromError writes the failure envelope matching err's kind.
// Internal failures are logged with their cause; callers only see a generic message.
func FromError(ctx *gin.Context, logger *logrus.Logger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": ctx.GetString("request_id"),
				"method":     ctx.Request.Method,
				"path":       ctx.FullPath(),
				"ip":         ctx.GetString("real_ip"),
			}).Error("request failed")
		}
		Error[any](ctx, kind.HTTPStatus(), "internal server error", nil)
		return
	}
	msg, details := err.Error(), interface{}(nil)
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg, details = ae.Message, ae.Details
	}
	Error[any](ctx, kind.HTTPStatus(), msg, details)
}
