package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/internal/container"
	handlers "github.com/inkwell-app/inkwell/internal/interface/http"
	"github.com/inkwell-app/inkwell/internal/interface/middleware"
	"github.com/inkwell-app/inkwell/pkg/helpers"
)

// PostModule wires post routes.
// Public: GET /api/posts/:id (viewer-aware), POST /api/posts/search.
// Protected: POST /api/posts, PUT/DELETE /api/posts/:id, GET /api/feed.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	searchLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.POST("/posts/search", searchLimiter, m.Handler.Search)

	viewer := rg.Group("/", middleware.Viewer(m.JWT))
	{
		viewer.GET("/posts/:id", m.Handler.Get)
	}

	auth := rg.Group("/", middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.PUT("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.GET("/feed", m.Handler.Feed)
	}
}
