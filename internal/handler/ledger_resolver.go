package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/service"
)

// LedgerResolver resolves which ledger a request targets. The ledgerId
// query parameter wins; without it the user's current ledger preference
// is used, and as a last resort their first owned ledger is fetched or
// seeded.
type LedgerResolver struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

// NewLedgerResolver creates a new LedgerResolver
func NewLedgerResolver(authService *service.AuthService, profileService *service.ProfileService) *LedgerResolver {
	return &LedgerResolver{
		authService:    authService,
		profileService: profileService,
	}
}

// Resolve returns the target ledger ID for the request
func (r *LedgerResolver) Resolve(c echo.Context, userID uuid.UUID) (int32, error) {
	if raw := c.QueryParam("ledgerId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			return 0, domain.ErrLedgerNotFound
		}
		return int32(id), nil
	}

	prefs, err := r.profileService.GetPreferences(userID)
	if err == nil && prefs.CurrentLedgerID != nil {
		return *prefs.CurrentLedgerID, nil
	}

	ledger, err := r.authService.GetOrCreateUserLedger(userID)
	if err != nil {
		return 0, err
	}
	return ledger.ID, nil
}

// parseIDParam parses the :id path parameter
func parseIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return int32(id), nil
}
