package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	followapp "github.com/inkwell-app/inkwell/internal/application"
	"github.com/inkwell-app/inkwell/pkg/response"
)

type FollowHandler struct {
	Svc    *followapp.FollowService
	Users  *followapp.UserService
	Logger *logrus.Logger
}

func NewFollowHandler(svc *followapp.FollowService, users *followapp.UserService, logger *logrus.Logger) *FollowHandler {
	return &FollowHandler{Svc: svc, Users: users, Logger: logger}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := h.Svc.Follow(c.Request.Context(), username, c.GetString("userID")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"following": username}, "followed", nil)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.Svc.Unfollow(c.Request.Context(), username, c.GetString("userID")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"unfollowed": username}, "unfollowed", nil)
}

// Followers lists the accounts following the named profile.
func (h *FollowHandler) Followers(c *gin.Context) {
	profile, err := h.Users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	cards, err := h.Svc.FollowersOf(c.Request.Context(), profile.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cards, "followers", gin.H{"count": len(cards)})
}

// Following lists the accounts the named profile follows.
func (h *FollowHandler) Following(c *gin.Context) {
	profile, err := h.Users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	cards, err := h.Svc.FollowingOf(c.Request.Context(), profile.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cards, "following", gin.H{"count": len(cards)})
}
