package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
	"github.com/oksasatya/fittrack-api/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Email       string   `json:"email" binding:"required,email,max=255"`
	Password    string   `json:"password" binding:"required,pwd"`
	FirstName   string   `json:"firstName" binding:"required,personname"`
	LastName    string   `json:"lastName" binding:"required,personname"`
	DateOfBirth *Date    `json:"dateOfBirth"`
	Gender      *string  `json:"gender" binding:"omitempty,gender"`
	HeightCm    *float64 `json:"heightCm" binding:"omitempty,gt=0,lte=300"`
	WeightKg    *float64 `json:"weightKg" binding:"omitempty,gt=0,lte=500"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth.timePtr(),
		Gender:      req.Gender,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": toUserView(u)}, "registration successful", nil)
}

// Login POST /api/auth/login
// The token is returned in the body and also set as an http-only cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user":  toUserView(res.User),
	}, "login successful", gin.H{"expires_at": res.ExpiresAt})
}

// Logout POST /api/auth/logout
// Tokens are stateless; logging out only drops the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
