package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/services"
	"github.com/ossiecodes/mingle/pkg/media"
)

// PostHandler handles post, comment and reaction HTTP requests
type PostHandler struct {
	content *services.ContentService
	media   media.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService, store media.Store) *PostHandler {
	return &PostHandler{content: content, media: store}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/posts/feed/:userId", h.GetFeed)
	g.GET("/posts/user/:userId", h.GetUserPosts)
	g.POST("/posts/:id/comments", h.AddComment)
	g.PUT("/posts/:id/reaction", h.AddReaction)
}

// CreatePost stores a new post; the image arrives as an optional
// multipart file.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	imageRef, err := saveUpload(c, "postImage", media.KindPost, h.media)
	if err != nil {
		return err
	}

	post, err := h.content.CreatePost(c.Request().Context(), req.UserID, req.Content, imageRef)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// DeletePost removes a post; only its author may do so.
func (h *PostHandler) DeletePost(c echo.Context) error {
	var req models.DeletePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.content.DeletePost(c.Request().Context(), c.Param("id"), req.UserID); err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"message": "Post deleted successfully"},
	})
}

// GetFeed returns posts by the user and everyone they follow.
func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.content.ListFeed(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetUserPosts returns all posts by one author, shaped for the viewer in
// the currentUserId query parameter.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.content.ListUserPosts(c.Request().Context(), c.Param("userId"), c.QueryParam("currentUserId"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// AddComment appends a comment to a post.
func (h *PostHandler) AddComment(c echo.Context) error {
	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, count, err := h.content.AddComment(c.Request().Context(), c.Param("id"), req.UserID, req.Text)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comment": comment, "commentCount": count},
	})
}

// AddReaction sets the caller's reaction on a post, replacing any
// previous one.
func (h *PostHandler) AddReaction(c echo.Context) error {
	var req models.AddReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Required fields missing.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.content.AddOrReplaceReaction(c.Request().Context(), c.Param("id"), req.UserID, req.Type)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": post}})
}
