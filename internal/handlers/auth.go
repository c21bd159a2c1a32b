package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/models"
	"github.com/ossiecodes/mingle/internal/services"
	"github.com/ossiecodes/mingle/pkg/media"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
	media    media.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService, store media.Store) *AuthHandler {
	return &AuthHandler{accounts: accounts, media: store}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register creates an account. The profile picture arrives as an optional
// multipart file.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please fill all required fields.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pictureRef, err := saveUpload(c, "profilePicture", media.KindProfile, h.media)
	if err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), req, pictureRef)
	if err != nil {
		return translate(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user.Public()},
	})
}

// Login checks credentials and returns the public account view. Invalid
// credentials are a 401 regardless of which half was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if services.KindOf(err) == services.KindForbidden {
			return echo.NewHTTPError(http.StatusUnauthorized, services.MessageOf(err))
		}
		return translate(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user.Public()},
	})
}
