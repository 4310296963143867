package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// ProfileHandler handles user profile and preference HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

// GetUserLedger handles GET /user/ledger
func (h *ProfileHandler) GetUserLedger(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledger, err := h.authService.GetOrCreateUserLedger(userID)
	if err != nil {
		return NewDomainError(c, err, "failed to load user ledger")
	}
	return c.JSON(http.StatusOK, ledger)
}

// GetPreferences handles GET /user/preferences
func (h *ProfileHandler) GetPreferences(c echo.Context) error {
	userID := middleware.GetUserID(c)

	prefs, err := h.profileService.GetPreferences(userID)
	if err != nil {
		return NewDomainError(c, err, "failed to load preferences")
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences handles PATCH /user/preferences
func (h *ProfileHandler) UpdatePreferences(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req service.PreferencesPatch
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	prefs, err := h.profileService.UpdatePreferences(userID, &req)
	if err != nil {
		return NewDomainError(c, err, "failed to update preferences")
	}
	return c.JSON(http.StatusOK, prefs)
}
