package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/response"
)

type WorkoutHandler struct {
	Svc    *application.WorkoutService
	Logger *logrus.Logger
}

func NewWorkoutHandler(svc *application.WorkoutService, logger *logrus.Logger) *WorkoutHandler {
	return &WorkoutHandler{Svc: svc, Logger: logger}
}

type createWorkoutRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=255"`
	WorkoutType     string `json:"workoutType" binding:"required,workouttype"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0,lte=1440"`
	CaloriesBurned  int    `json:"caloriesBurned" binding:"gte=0"`
	WorkoutDate     *Date  `json:"workoutDate"`
	IntensityLevel  *int   `json:"intensityLevel" binding:"omitempty,intensity"`
	Notes           string `json:"notes" binding:"max=2000"`
}

// List GET /api/workouts
func (h *WorkoutHandler) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	ws, err := h.Svc.List(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toWorkoutViews(ws), "workouts", gin.H{"count": len(ws)})
}

// Create POST /api/workouts
func (h *WorkoutHandler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req createWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	w, err := h.Svc.Create(c.Request.Context(), id.UserID, application.CreateWorkoutInput{
		Name:            req.Name,
		Type:            entity.WorkoutType(req.WorkoutType),
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Date:            req.WorkoutDate.timePtr(),
		IntensityLevel:  req.IntensityLevel,
		Notes:           req.Notes,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toWorkoutView(*w), "workout logged", nil)
}
