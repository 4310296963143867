package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

var (
	errInvalidAmount = errors.New("invalid amount")
	errInvalidDate   = errors.New("invalid date")
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	resolver           *LedgerResolver
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, resolver *LedgerResolver) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		resolver:           resolver,
	}
}

// TransactionRequest represents the create and update transaction request body
type TransactionRequest struct {
	LedgerID    int32  `json:"ledgerId,omitempty"`
	CategoryID  int32  `json:"categoryId"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Note        string `json:"note,omitempty"`
	Receipt     string `json:"receipt,omitempty"`
}

// GetTransactions handles GET /transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	transactions, err := h.transactionService.GetTransactions(userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to list transactions")
	}
	return c.JSON(http.StatusOK, transactions)
}

// GetSummary handles GET /transactions/summary
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	summary, err := h.transactionService.GetSummary(userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to compute summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	transaction, err := h.buildTransaction(c, userID, &req)
	if err != nil {
		return h.respondBuildError(c, err)
	}

	created, err := h.transactionService.CreateTransaction(c.Request().Context(), userID, transaction)
	if err != nil {
		return NewDomainError(c, err, "failed to create transaction")
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateTransaction handles PUT /transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)

	transactionID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid transaction id")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	transaction, err := h.buildTransaction(c, userID, &req)
	if err != nil {
		return h.respondBuildError(c, err)
	}
	transaction.ID = transactionID

	updated, err := h.transactionService.UpdateTransaction(c.Request().Context(), userID, transaction)
	if err != nil {
		return NewDomainError(c, err, "failed to update transaction")
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)

	transactionID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid transaction id")
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), userID, transactionID); err != nil {
		return NewDomainError(c, err, "failed to delete transaction")
	}
	return c.NoContent(http.StatusNoContent)
}

// buildTransaction converts a request body to a domain transaction
func (h *TransactionHandler) buildTransaction(c echo.Context, userID uuid.UUID, req *TransactionRequest) (*domain.Transaction, error) {
	ledgerID := req.LedgerID
	if ledgerID == 0 {
		var err error
		ledgerID, err = h.resolver.Resolve(c, userID)
		if err != nil {
			return nil, err
		}
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, errInvalidAmount
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				return nil, errInvalidDate
			}
		}
		date = parsed
	}

	return &domain.Transaction{
		LedgerID:    ledgerID,
		CategoryID:  req.CategoryID,
		Type:        domain.EntryType(req.Type),
		Amount:      amount,
		Date:        date,
		Description: req.Description,
		Note:        req.Note,
		Receipt:     req.Receipt,
	}, nil
}

func (h *TransactionHandler) respondBuildError(c echo.Context, err error) error {
	if errors.Is(err, errInvalidAmount) || errors.Is(err, errInvalidDate) {
		return NewBadRequestError(c, err.Error())
	}
	return NewDomainError(c, err, "failed to resolve ledger")
}
