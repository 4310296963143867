package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// ActivityHandler handles activity log HTTP requests
type ActivityHandler struct {
	activityService *service.ActivityService
	resolver        *LedgerResolver
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *service.ActivityService, resolver *LedgerResolver) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		resolver:        resolver,
	}
}

// GetLogs handles GET /logs
func (h *ActivityHandler) GetLogs(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	logs, err := h.activityService.GetLogs(userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to load activity log")
	}
	return c.JSON(http.StatusOK, logs)
}
