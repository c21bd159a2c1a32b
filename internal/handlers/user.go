package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/services"
	"github.com/ossiecodes/mingle/pkg/media"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	accounts *services.AccountService
	media    media.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accounts *services.AccountService, store media.Store) *UserHandler {
	return &UserHandler{accounts: accounts, media: store}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id/bio", h.UpdateBio)
	g.PUT("/users/:id/picture", h.UpdateProfilePicture)
}

// ListUsers returns the discover list. With an excludeId query parameter
// the caller is omitted and each entry carries their follow status.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.accounts.ListUsers(c.Request().Context(), c.QueryParam("excludeId"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// GetUser returns one user's public view.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.accounts.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user": user.Public()}})
}

// UpdateBio replaces the user's bio.
func (h *UserHandler) UpdateBio(c echo.Context) error {
	var req models.UpdateBioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	bio, err := h.accounts.UpdateBio(c.Request().Context(), c.Param("id"), req.Bio)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bio": bio}})
}

// UpdateProfilePicture stores a new profile picture and points the user at
// it. Older embedded snapshots keep the previous picture.
func (h *UserHandler) UpdateProfilePicture(c echo.Context) error {
	pictureRef, err := saveUpload(c, "profilePicture", media.KindProfile, h.media)
	if err != nil {
		return err
	}

	reference, err := h.accounts.UpdateProfilePicture(c.Request().Context(), c.Param("id"), pictureRef)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profilePicture": reference}})
}
