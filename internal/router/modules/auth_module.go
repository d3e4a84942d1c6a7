package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"contacts-api/internal/container"
	repo "contacts-api/internal/domain/repository"
	handlers "contacts-api/internal/interface/http"
	"contacts-api/internal/interface/middleware"
	"contacts-api/pkg/helpers"
)

// AuthModule registers the public auth endpoints:
// POST /api/auth/signup, POST /api/auth/login,
// GET /api/auth/confirmed_email/:token, GET /api/auth/refresh_token
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  *helpers.TokenManager
	Users   repo.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, tokens *helpers.TokenManager, users repo.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signupLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/confirmed_email/:token", m.Handler.ConfirmEmail)
	rg.GET("/auth/refresh_token", refreshLimiter, m.Handler.Refresh)
}
