package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// ErrorResponse is the envelope for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewBadRequestError creates a 400 response
func NewBadRequestError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// NewUnauthorizedError creates a 401 response
func NewUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// NewForbiddenError creates a 403 response
func NewForbiddenError(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, ErrorResponse{Error: message})
}

// NewNotFoundError creates a 404 response
func NewNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// NewConflictError creates a 409 response
func NewConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// NewInternalError creates a 500 response
func NewInternalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// notFoundSentinels are reported as 404 regardless of which entity was missing
var notFoundSentinels = []error{
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrLedgerNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrShareNotFound,
}

// validationSentinels are reported as 400
var validationSentinels = []error{
	domain.ErrNameRequired,
	domain.ErrNameTooLong,
	domain.ErrUsernameTooShort,
	domain.ErrPasswordTooShort,
	domain.ErrInvalidCurrency,
	domain.ErrInvalidRole,
	domain.ErrInvalidEntryType,
	domain.ErrAmountNotPositive,
	domain.ErrCategoryMismatch,
	domain.ErrShareSelf,
	domain.ErrReceiptTooLarge,
	domain.ErrReceiptInvalid,
}

// conflictSentinels are reported as 409
var conflictSentinels = []error{
	domain.ErrUsernameTaken,
	domain.ErrCategoryNameTaken,
	domain.ErrCategoryInUse,
	domain.ErrShareExists,
}

// NewDomainError maps a service error onto the response envelope. The
// fallback message is used when the error is not a known domain
// sentinel, in which case the response is a 500.
func NewDomainError(c echo.Context, err error, fallback string) error {
	if errors.Is(err, domain.ErrForbidden) {
		return NewForbiddenError(c, err.Error())
	}
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return NewNotFoundError(c, err.Error())
		}
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return NewBadRequestError(c, err.Error())
		}
	}
	for _, sentinel := range conflictSentinels {
		if errors.Is(err, sentinel) {
			return NewConflictError(c, err.Error())
		}
	}
	return NewInternalError(c, fallback)
}
