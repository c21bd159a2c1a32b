package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/services"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messaging *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messaging *services.MessageService) *MessageHandler {
	return &MessageHandler{messaging: messaging}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/conversations/:userId", h.GetConversations)
	g.GET("/messages/:userId/:otherId", h.GetThread)
}

// SendMessage sends a direct message.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.messaging.Send(c.Request().Context(), req.SenderID, req.ReceiverID, req.Text)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"messageId": message.ID},
	})
}

// GetConversations returns the user's conversation list, most recent
// exchange first.
func (h *MessageHandler) GetConversations(c echo.Context) error {
	conversations, err := h.messaging.ListConversations(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"conversations": conversations}})
}

// GetThread returns the full exchange between two users, oldest first, and
// marks everything the caller received from the other side as read.
func (h *MessageHandler) GetThread(c echo.Context) error {
	messages, err := h.messaging.GetThread(c.Request().Context(), c.Param("userId"), c.Param("otherId"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"messages": messages}})
}
