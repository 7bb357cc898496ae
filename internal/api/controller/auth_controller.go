package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/api/middleware"
	"libraryapi/internal/api/models"
	"libraryapi/internal/api/response"
	"libraryapi/internal/api/service"
)

// AuthController handles registration and login.
type AuthController struct {
	auth service.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles the user registration endpoint.
func (ac *AuthController) Register(c *gin.Context) {
	req := middleware.Body[models.RegisterRequest](c)

	user, err := ac.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Message(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(c.Request.Context(), "controller error", "entity", "user", "verb", "registering", "error", err)
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login handles the user login endpoint.
func (ac *AuthController) Login(c *gin.Context) {
	req := middleware.Body[models.LoginRequest](c)

	token, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Message(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(c.Request.Context(), "controller error", "entity", "user", "verb", "logging in", "error", err)
		response.Message(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}
