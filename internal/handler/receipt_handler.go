package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// ReceiptHandler handles receipt accounting HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	resolver       *LedgerResolver
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService, resolver *LedgerResolver) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		resolver:       resolver,
	}
}

// GetStats handles GET /receipts/stats
func (h *ReceiptHandler) GetStats(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	stats, err := h.receiptService.GetStats(userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to compute receipt stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// ClearReceipts handles DELETE /receipts/stats
func (h *ReceiptHandler) ClearReceipts(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	result, err := h.receiptService.ClearReceipts(c.Request().Context(), userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to clear receipts")
	}
	return c.JSON(http.StatusOK, result)
}
