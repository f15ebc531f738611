package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/response"
)

type GoalHandler struct {
	Svc    *application.GoalService
	Logger *logrus.Logger
}

func NewGoalHandler(svc *application.GoalService, logger *logrus.Logger) *GoalHandler {
	return &GoalHandler{Svc: svc, Logger: logger}
}

type createGoalRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=255"`
	GoalType     string   `json:"goalType" binding:"required,min=1,max=50"`
	Description  string   `json:"description" binding:"max=2000"`
	TargetValue  *float64 `json:"targetValue" binding:"omitempty,gte=0"`
	TargetUnit   string   `json:"targetUnit" binding:"max=50"`
	CurrentValue float64  `json:"currentValue" binding:"gte=0"`
	Status       string   `json:"status" binding:"omitempty,goalstatus"`
	StartDate    *Date    `json:"startDate"`
	TargetDate   *Date    `json:"targetDate"`
}

type updateGoalRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string  `json:"description" binding:"omitempty,max=2000"`
	TargetValue  *float64 `json:"targetValue" binding:"omitempty,gte=0"`
	TargetUnit   *string  `json:"targetUnit" binding:"omitempty,max=50"`
	CurrentValue *float64 `json:"currentValue" binding:"omitempty,gte=0"`
	Status       *string  `json:"status" binding:"omitempty,goalstatus"`
	TargetDate   *Date    `json:"targetDate"`
}

// List GET /api/goals
func (h *GoalHandler) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	gs, err := h.Svc.List(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toGoalViews(gs), "goals", gin.H{"count": len(gs)})
}

// Create POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req createGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	in := application.CreateGoalInput{
		Title:        req.Title,
		Type:         req.GoalType,
		Description:  req.Description,
		TargetUnit:   req.TargetUnit,
		CurrentValue: req.CurrentValue,
		Status:       entity.GoalStatus(req.Status),
		StartDate:    req.StartDate.timePtr(),
		TargetDate:   req.TargetDate.timePtr(),
	}
	if req.TargetValue != nil {
		in.TargetValue = *req.TargetValue
	}
	g, err := h.Svc.Create(c.Request.Context(), id.UserID, in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toGoalView(*g), "goal created", nil)
}

// Update PUT /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req updateGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := entity.GoalPatch{
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		TargetUnit:   req.TargetUnit,
		CurrentValue: req.CurrentValue,
		TargetDate:   req.TargetDate.timePtr(),
	}
	if req.Status != nil {
		s := entity.GoalStatus(*req.Status)
		patch.Status = &s
	}
	g, err := h.Svc.Update(c.Request.Context(), id.UserID, c.Param("id"), patch)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toGoalView(*g), "goal updated", nil)
}

// Delete DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id.UserID, c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "goal deleted", nil)
}
