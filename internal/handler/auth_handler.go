package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// AuthHandler handles signup and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest represents the signup and login request body
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	user, err := h.authService.Signup(req.Username, req.Password)
	if err != nil {
		return NewDomainError(c, err, "failed to create account")
	}

	return c.JSON(http.StatusOK, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			log.Debug().Str("username", req.Username).Msg("Login rejected")
			return NewUnauthorizedError(c, "invalid username or password")
		}
		log.Error().Err(err).Msg("Login failed")
		return NewInternalError(c, "failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID.String(),
		Username: user.Username,
	})
}
