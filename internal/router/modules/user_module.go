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

// UserModule registers the authenticated profile endpoints:
// GET /api/profile, POST /api/profile/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  *helpers.TokenManager
	Users   repo.UserRepository
}

func NewUserModule(h *handlers.UserHandler, tokens *helpers.TokenManager, users repo.UserRepository) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.Tokens, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.GET("", m.Handler.GetProfile)
		auth.POST("/avatar", m.Handler.UploadAvatar)
	}
}
