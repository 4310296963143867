package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
	resolver        *LedgerResolver
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService, resolver *LedgerResolver) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		resolver:        resolver,
	}
}

// CategoryRequest represents the create and update category request body
type CategoryRequest struct {
	LedgerID int32  `json:"ledgerId,omitempty"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)

	ledgerID, err := h.resolver.Resolve(c, userID)
	if err != nil {
		return NewDomainError(c, err, "failed to resolve ledger")
	}

	categories, err := h.categoryService.GetCategories(userID, ledgerID)
	if err != nil {
		return NewDomainError(c, err, "failed to list categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CategoryRequest
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

	category, err := h.categoryService.CreateCategory(c.Request().Context(), userID, &domain.Category{
		LedgerID: ledgerID,
		Name:     req.Name,
		Type:     domain.EntryType(req.Type),
		Color:    req.Color,
		Icon:     req.Icon,
	})
	if err != nil {
		return NewDomainError(c, err, "failed to create category")
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)

	categoryID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid category id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "invalid request body")
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), userID, categoryID, req.Name, domain.EntryType(req.Type), req.Color, req.Icon)
	if err != nil {
		return NewDomainError(c, err, "failed to update category")
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)

	categoryID, err := parseIDParam(c)
	if err != nil {
		return NewBadRequestError(c, "invalid category id")
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), userID, categoryID); err != nil {
		return NewDomainError(c, err, "failed to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}
