package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	postapp "github.com/inkwell-app/inkwell/internal/application"
	"github.com/inkwell-app/inkwell/pkg/response"
	"github.com/inkwell-app/inkwell/pkg/validation"
)

type PostHandler struct {
	Svc    *postapp.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *postapp.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type searchRequest struct {
	SearchTerm string `json:"search_term"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	id, err := h.Svc.Create(c.Request.Context(), postapp.PostInput{Title: req.Title, Body: req.Body}, c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "post created", nil)
}

// Get returns a single post for the current viewer, anonymous or not.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, post, "post", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.Update(c.Request.Context(), c.Param("id"), postapp.PostInput{Title: req.Title, Body: req.Body}, c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted", nil)
}

// Search is tolerant of junk input: an unusable term produces an empty
// result set, never an error.
func (h *PostHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Success(c, http.StatusOK, []postapp.PostView{}, "search results", gin.H{"count": 0})
		return
	}

	posts, err := h.Svc.Search(c.Request.Context(), req.SearchTerm)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("post search failed")
		}
		response.Success(c, http.StatusOK, []postapp.PostView{}, "search results", gin.H{"count": 0})
		return
	}
	response.Success(c, http.StatusOK, posts, "search results", gin.H{"count": len(posts)})
}

func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.Svc.Feed(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "feed", gin.H{"count": len(posts)})
}
