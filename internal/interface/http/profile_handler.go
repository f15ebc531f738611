package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/pkg/response"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName   *string  `json:"firstName" binding:"omitempty,personname"`
	LastName    *string  `json:"lastName" binding:"omitempty,personname"`
	Email       *string  `json:"email" binding:"omitempty,email,max=255"`
	DateOfBirth *Date    `json:"dateOfBirth"`
	Gender      *string  `json:"gender" binding:"omitempty,gender"`
	HeightCm    *float64 `json:"heightCm" binding:"omitempty,gt=0,lte=300"`
	WeightKg    *float64 `json:"weightKg" binding:"omitempty,gt=0,lte=500"`
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile", nil)
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id.UserID, application.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth.timePtr(),
		Gender:      req.Gender,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile updated", nil)
}
