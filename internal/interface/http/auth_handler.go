package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contacts-api/internal/application"
	"contacts-api/internal/domain/entity"
	"contacts-api/internal/interface/middleware"
	"contacts-api/pkg/response"
	"contacts-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "account already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u),
		"user successfully created, check your email for confirmation", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidEmail):
			response.Error[any](c, http.StatusUnauthorized, "invalid email", nil)
		case errors.Is(err, application.ErrEmailNotConfirmed):
			response.Error[any](c, http.StatusUnauthorized, "email not confirmed", nil)
		case errors.Is(err, application.ErrInvalidPassword):
			response.Error[any](c, http.StatusUnauthorized, "invalid password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, pair, "login successful", nil)
}

// ConfirmEmail GET /api/auth/confirmed_email/:token
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")
	already, err := h.Svc.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, application.ErrVerification) {
			response.Error[any](c, http.StatusBadRequest, "verification error", nil)
			return
		}
		h.Logger.WithError(err).Error("email confirmation failed")
		response.Error[any](c, http.StatusInternalServerError, "email confirmation failed", nil)
		return
	}
	if already {
		response.Success[any](c, http.StatusOK, nil, "your email is already confirmed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email confirmed", nil)
}

// Refresh GET /api/auth/refresh_token
// The bearer credential must be the refresh token currently stored for the user.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, application.ErrInvalidRefreshToken) {
			response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
			return
		}
		h.Logger.WithError(err).Error("token refresh failed")
		response.Error[any](c, http.StatusInternalServerError, "token refresh failed", nil)
		return
	}
	response.Success(c, http.StatusOK, pair, "token refreshed", nil)
}
