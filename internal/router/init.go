package router

import (
	app "github.com/inkwell-app/inkwell/internal/application"
	"github.com/inkwell-app/inkwell/internal/container"
	pginfra "github.com/inkwell-app/inkwell/internal/infrastructure/postgres"
	handlers "github.com/inkwell-app/inkwell/internal/interface/http"
	"github.com/inkwell-app/inkwell/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	follows := pginfra.NewFollowRepository(pool)

	userSvc := app.NewUserService(users, jwt, rdb, logger)
	postSvc := app.NewPostService(posts, follows, container.GetES(), cfg.ESPostsIndex, container.GetNotifyPub(), rdb, logger)
	followSvc := app.NewFollowService(follows, users, posts, rdb, logger)

	userHandler := handlers.NewUserHandler(userSvc, followSvc, postSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	postHandler := handlers.NewPostHandler(postSvc, logger)
	followHandler := handlers.NewFollowHandler(followSvc, userSvc, logger)

	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewPostModule(postHandler, jwt))
	r.Add(modules.NewFollowModule(followHandler, jwt))
}
