package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifier *services.Notifier
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifier *services.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/users/:id/notifications", h.GetNotifications)
}

// GetNotifications returns the user's 20 newest notifications.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notifier.ListRecent(c.Param("id"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"notifications": notifications}})
}
