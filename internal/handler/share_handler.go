package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// ShareHandler handles ledger sharing HTTP requests
type ShareHandler struct {
	shareService *service.ShareService
	resolver     *LedgerResolver
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareService *service.ShareService, resolver *LedgerResolver) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		resolver:     resolver,
	}
}

// InviteRequest represents the invite request body
type InviteRequest struct {
	LedgerID int32  `json:"ledgerId,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UpdateRoleRequest represents the role change request body
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// GetShares handles GET /ledger/invite
func (h *ShareHandler) GetShares(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	shares, err := h.shareService.GetShares(userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to list shares")
	}
	return c.JSON(http.StatusOK, shares)
}

// Invite handles POST /ledger/invite
func (h *ShareHandler) Invite(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req InviteRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	ledgerID := req.LedgerID
	if ledgerID == 0 {
		var err error
		ledgerID, err = h.resolver.Resolve(c, userID)
		if err != nil {
			return NewDomainError(c, err, "failed to resolve ledger")
		}
	}

	share, err := h.shareService.Invite(c.Request().Context(), userID, ledgerID, req.Username, domain.ShareRole(req.Role))
	if err != nil {
		return NewDomainError(c, err, "failed to invite user")
	}
	return c.JSON(http.StatusCreated, share)
}

// UpdateRole handles PATCH /ledger/invite/:id
func (h *ShareHandler) UpdateRole(c echo.Context) error {
	userID := middleware.GetUserID(c)

	shareID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid share id")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	share, err := h.shareService.UpdateRole(c.Request().Context(), userID, shareID, domain.ShareRole(req.Role))
	if err != nil {
		return NewDomainError(c, err, "failed to update role")
	}
	return c.JSON(http.StatusOK, share)
}

// Revoke handles DELETE /ledger/invite/:id
func (h *ShareHandler) Revoke(c echo.Context) error {
	userID := middleware.GetUserID(c)

	shareID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid share id")
	}

	if err := h.shareService.Revoke(c.Request().Context(), userID, shareID); err != nil {
		return NewDomainError(c, err, "failed to revoke share")
	}
	return c.NoContent(http.StatusNoContent)
}
