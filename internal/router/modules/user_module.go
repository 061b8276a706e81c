package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/internal/container"
	handlers "github.com/inkwell-app/inkwell/internal/interface/http"
	"github.com/inkwell-app/inkwell/internal/interface/middleware"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

// UserModule wires account routes.
// Public: POST /api/register, /api/login, /api/refresh,
// /api/check-username, /api/check-email; GET /api/profile/:username
// and /api/profile/:username/posts (viewer-aware).
// Protected: POST /api/logout.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	probeLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/check-username", probeLimiter, m.Handler.CheckUsername)
	rg.POST("/check-email", probeLimiter, m.Handler.CheckEmail)

	// Profile screens are public but honor a logged-in viewer.
	viewer := rg.Group("/", middleware.Viewer(m.JWT))
	{
		viewer.GET("/profile/:username", m.Handler.Profile)
		viewer.GET("/profile/:username/posts", m.Handler.ProfilePosts)
	}

	auth := rg.Group("/", middleware.Auth(rdb, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
