package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/services"
)

// FollowHandler handles follow-request HTTP requests
type FollowHandler struct {
	social *services.SocialService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(social *services.SocialService) *FollowHandler {
	return &FollowHandler{social: social}
}

// RegisterFollowRoutes registers follow-request routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow-requests", h.SendFollowRequest)
	g.PUT("/follow-requests/:id", h.HandleFollowRequest)
	g.GET("/users/:id/follow-requests", h.ListPendingRequests)
}

// SendFollowRequest creates a pending follow request.
func (h *FollowHandler) SendFollowRequest(c echo.Context) error {
	var req models.SendFollowRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fromUserId and toUserId are required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.social.SendFollowRequest(c.Request().Context(), req.FromUserID, req.ToUserID); err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"message": "Follow request sent successfully"},
	})
}

// HandleFollowRequest accepts or rejects a pending follow request.
func (h *FollowHandler) HandleFollowRequest(c echo.Context) error {
	var req models.HandleFollowRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request or action.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.social.HandleFollowRequest(c.Request().Context(), c.Param("id"), req.Action); err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"message": "Follow request " + req.Action + "ed successfully"},
	})
}

// ListPendingRequests returns pending requests targeting a user,
// newest first.
func (h *FollowHandler) ListPendingRequests(c echo.Context) error {
	requests, err := h.social.ListPendingRequests(c.Request().Context(), c.Param("id"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": requests}})
}
