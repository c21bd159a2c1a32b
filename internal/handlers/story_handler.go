package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/services"
	"github.com/ossiecodes/mingle/pkg/media"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	stories *services.StoryService
	media   media.Store
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(stories *services.StoryService, store media.Store) *StoryHandler {
	return &StoryHandler{stories: stories, media: store}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.UploadStory)
	g.GET("/stories/:userId", h.GetStories)
	g.POST("/stories/:id/view", h.ViewStory)
}

// UploadStory stores a new story from a required multipart file. The media
// kind comes from the file's content type.
func (h *StoryHandler) UploadStory(c echo.Context) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required.")
	}

	fileHeader, err := c.FormFile("story")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Story media is required.")
	}

	mediaType := models.MediaImage
	if strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "video/") {
		mediaType = models.MediaVideo
	}

	mediaRef, err := storeFile(fileHeader, media.KindStory, h.media)
	if err != nil {
		return err
	}

	story, err := h.stories.Upload(c.Request().Context(), userID, mediaRef, mediaType)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"story": story}})
}

// GetStories returns active stories visible to a user.
func (h *StoryHandler) GetStories(c echo.Context) error {
	stories, err := h.stories.ListActive(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"stories": stories}})
}

// ViewStory records that a user viewed a story. Repeat views are no-ops.
func (h *StoryHandler) ViewStory(c echo.Context) error {
	var req models.ViewStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "userId and storyId are required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.stories.RecordView(c.Request().Context(), req.UserID, c.Param("id")); err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"message": "Story viewed"},
	})
}
