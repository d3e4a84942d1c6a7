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

// ContactModule registers the owner-scoped contact endpoints under /api/contacts.
// Every route sits behind the access-token guard.
type ContactModule struct {
	Handler *handlers.ContactHandler
	Tokens  *helpers.TokenManager
	Users   repo.UserRepository
}

func NewContactModule(h *handlers.ContactHandler, tokens *helpers.TokenManager, users repo.UserRepository) *ContactModule {
	return &ContactModule{Handler: h, Tokens: tokens, Users: users}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	createLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUser(), nil)

	auth := rg.Group("/contacts")
	auth.Use(middleware.Auth(m.Tokens, m.Users))
	auth.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByUser(), middleware.AllowPrivateIP()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", createLimiter, m.Handler.Create)
		auth.GET("/days_to_birthday", m.Handler.UpcomingBirthdays)
		auth.GET("/get_by_name", m.Handler.FindByName)
		auth.GET("/get_by_surname", m.Handler.FindBySurname)
		auth.GET("/get_by_email", m.Handler.FindByEmail)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.GetByID)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Remove)
	}
}
