package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/response"
	"github.com/oksasatya/fittrack-api/pkg/validation"
)

// AdminHandler serves the user management and platform endpoints. Every route
// is mounted behind the admin-only gate.
type AdminHandler struct {
	Svc      *application.AdminService
	Settings *application.SettingsService
	Logger   *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, settings *application.SettingsService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Settings: settings, Logger: logger}
}

type updateUserRequest struct {
	IsActive *bool   `json:"is_active"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin standard administrator"`
}

type updateSettingsRequest struct {
	PlatformName    *string `json:"platform_name" binding:"omitempty,min=1,max=100"`
	MaxUsers        *int    `json:"max_users" binding:"omitempty,gt=0"`
	MaintenanceMode *bool   `json:"maintenance_mode"`
}

// ListUsers GET /api/admin/users?q=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	out := make([]adminUserView, 0, len(users))
	for i := range users {
		out = append(out, adminUserView{
			userView:      toUserView(&users[i].User),
			TotalWorkouts: users[i].TotalWorkouts,
			TotalCalories: users[i].TotalCalories,
		})
	}
	response.Success(c, http.StatusOK, out, "users", gin.H{"count": len(out)})
}

// UpdateUser PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.IsActive == nil && req.Role == nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"payload": "is_active or role is required"})
		return
	}
	in := application.UpdateUserInput{IsActive: req.IsActive}
	if req.Role != nil {
		r, err := entity.ParseRole(*req.Role)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"role": "is not a known role"})
			return
		}
		in.Role = &r
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user updated", nil)
}

// DeleteUser DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

// Stats GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	t, err := h.Svc.PlatformTotals(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "platform stats", nil)
}

// GetSettings GET /api/admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	s, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": s}, "settings", nil)
}

// UpdateSettings POST /api/admin/settings
// Only the known settings keys are accepted; anything else is a 400.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		err = dec.Decode(&req)
	}
	if err == nil {
		err = binding.Validator.ValidateStruct(&req)
	}
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", settingsDetails(err))
		return
	}
	s, err := h.Settings.Update(c.Request.Context(), entity.SettingsPatch{
		PlatformName:    req.PlatformName,
		MaxUsers:        req.MaxUsers,
		MaintenanceMode: req.MaintenanceMode,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": s}, "settings updated", nil)
}

func settingsDetails(err error) map[string]string {
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return map[string]string{strings.Trim(field, `"`): "is not a setting"}
	}
	return validation.ToDetails(err)
}
