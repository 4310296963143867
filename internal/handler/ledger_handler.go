package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// LedgerHandler handles ledger-related HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CreateLedgerRequest represents the create ledger request body
type CreateLedgerRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
}

// RenameLedgerRequest represents the rename request body
type RenameLedgerRequest struct {
	Name string `json:"name"`
}

// ChangeCurrencyRequest represents the currency change request body
type ChangeCurrencyRequest struct {
	Currency string `json:"currency"`
}

// GetLedgers handles GET /ledgers
func (h *LedgerHandler) GetLedgers(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgers, err := h.ledgerService.GetLedgers(userID)
	if err != nil {
		return NewDomainError(c, err, "failed to list ledgers")
	}
	return c.JSON(http.StatusOK, ledgers)
}

// CreateLedger handles POST /ledgers
func (h *LedgerHandler) CreateLedger(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateLedgerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	ledger, err := h.ledgerService.CreateLedger(userID, req.Name, req.Currency)
	if err != nil {
		return NewDomainError(c, err, "failed to create ledger")
	}
	return c.JSON(http.StatusCreated, ledger)
}

// RenameLedger handles PATCH /ledger/:id
func (h *LedgerHandler) RenameLedger(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid ledger id")
	}

	var req RenameLedgerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	ledger, err := h.ledgerService.RenameLedger(userID, ledgerID, req.Name)
	if err != nil {
		return NewDomainError(c, err, "failed to rename ledger")
	}
	return c.JSON(http.StatusOK, ledger)
}

// ChangeCurrency handles PATCH /ledger/:id/currency
func (h *LedgerHandler) ChangeCurrency(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid ledger id")
	}

	var req ChangeCurrencyRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	ledger, err := h.ledgerService.ChangeCurrency(userID, ledgerID, req.Currency)
	if err != nil {
		return NewDomainError(c, err, "failed to change currency")
	}
	return c.JSON(http.StatusOK, ledger)
}
