package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/internal/container"
	handlers "github.com/inkwell-app/inkwell/internal/interface/http"
	"github.com/inkwell-app/inkwell/internal/interface/middleware"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

// FollowModule wires follow routes.
// Public: GET /api/profile/:username/followers and /following.
// Protected: POST/DELETE /api/profile/:username/follow.
type FollowModule struct {
	Handler *handlers.FollowHandler
	JWT     *helpers.JWTManager
}

func NewFollowModule(h *handlers.FollowHandler, jwt *helpers.JWTManager) *FollowModule {
	return &FollowModule{Handler: h, JWT: jwt}
}

func (m *FollowModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	rg.GET("/profile/:username/followers", m.Handler.Followers)
	rg.GET("/profile/:username/following", m.Handler.Following)

	auth := rg.Group("/", middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/profile/:username/follow", m.Handler.Follow)
		auth.DELETE("/profile/:username/follow", m.Handler.Unfollow)
	}
}
