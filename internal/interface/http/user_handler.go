package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/inkwell-app/inkwell/internal/application"
	"github.com/inkwell-app/inkwell/pkg/helpers"
	"github.com/inkwell-app/inkwell/pkg/response"
	"github.com/inkwell-app/inkwell/pkg/validation"
)

type UserHandler struct {
	Svc     *userapp.UserService
	Follows *userapp.FollowService
	Posts   *userapp.PostService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *userapp.UserService, follows *userapp.FollowService, posts *userapp.PostService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Follows: follows, Posts: posts, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type existsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates the account and logs the new user straight in, the
// way the guest homepage form behaves.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	pair, err := h.Svc.IssueTokens(c.Request.Context(), u)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	response.Success(c, http.StatusCreated, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"avatar":   helpers.AvatarURL(u.Email),
	}, "account created", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "login successful", gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// CheckUsername and CheckEmail back the live pre-registration probes.
// They never error; malformed input simply reads as "available".
func (h *UserHandler) CheckUsername(c *gin.Context) {
	var req existsRequest
	_ = c.ShouldBindJSON(&req)
	taken := h.Svc.UsernameExists(c.Request.Context(), req.Username)
	response.Success(c, http.StatusOK, gin.H{"exists": taken}, "username checked", nil)
}

func (h *UserHandler) CheckEmail(c *gin.Context) {
	var req existsRequest
	_ = c.ShouldBindJSON(&req)
	used := h.Svc.EmailExists(c.Request.Context(), req.Email)
	response.Success(c, http.StatusOK, gin.H{"exists": used}, "email checked", nil)
}

// Profile returns the public view of a username together with the
// aggregate counts and the visitor's relationship to it.
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.Svc.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	stats, err := h.Follows.ProfileStats(c.Request.Context(), profile.ID, c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"profile": profile,
		"stats":   stats,
	}, "profile", nil)
}

// ProfilePosts lists a user's posts newest first. Unknown usernames
// read as not found.
func (h *UserHandler) ProfilePosts(c *gin.Context) {
	profile, err := h.Svc.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	posts, err := h.Posts.FindByAuthor(c.Request.Context(), profile.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", gin.H{"count": len(posts)})
}
