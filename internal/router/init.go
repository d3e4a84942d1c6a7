package router

import (
	"contacts-api/internal/application"
	"contacts-api/internal/container"
	pginfra "contacts-api/internal/infrastructure/postgres"
	handlers "contacts-api/internal/interface/http"
	"contacts-api/internal/router/modules"
)

// InitModules wires repositories, services, and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	tokens := container.GetTokens()

	userRepo := pginfra.NewUserRepository(pool)
	contactRepo := pginfra.NewContactRepository(pool)

	authSvc := application.NewAuthService(userRepo, tokens, container.GetRabbitPub(), logger, cfg)
	contactSvc := application.NewContactService(contactRepo, container.GetES(), cfg.ESContactsIndex, logger)
	profileSvc := application.NewProfileService(userRepo, container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), tokens, userRepo))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(contactSvc, logger), tokens, userRepo))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(profileSvc, logger), tokens, userRepo))
	r.Add(modules.NewDebugModule())
}
