package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/ledgerly/ledgerly-backend/internal/session"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
)

// testEnv wires the full service stack on mock repositories with one
// ledger shared between an owner, an editor and a viewer.
type testEnv struct {
	Owner    uuid.UUID
	Editor   uuid.UUID
	Viewer   uuid.UUID
	Stranger uuid.UUID
	Ledger   *domain.Ledger

	Users        *testutil.MockUserRepository
	Ledgers      *testutil.MockLedgerRepository
	Shares       *testutil.MockShareRepository
	Categories   *testutil.MockCategoryRepository
	Transactions *testutil.MockTransactionRepository
	Sink         *testutil.MockActivitySink

	Auth        *service.AuthService
	Profile     *service.ProfileService
	Ledger1     *service.LedgerService
	Category    *service.CategoryService
	Transaction *service.TransactionService
	Share       *service.ShareService
	Receipt     *service.ReceiptService
	Activity    *service.ActivityService
	Resolver    *LedgerResolver
}

func newTestEnv() *testEnv {
	env := &testEnv{
		Owner:    uuid.New(),
		Editor:   uuid.New(),
		Viewer:   uuid.New(),
		Stranger: uuid.New(),
	}
	env.Users = testutil.NewMockUserRepository()
	env.Users.AddUser(&domain.User{ID: env.Owner, Username: "owner"})
	env.Users.AddUser(&domain.User{ID: env.Editor, Username: "editor"})
	env.Users.AddUser(&domain.User{ID: env.Viewer, Username: "viewer"})
	env.Users.AddUser(&domain.User{ID: env.Stranger, Username: "stranger"})

	env.Shares = testutil.NewMockShareRepository()
	env.Ledgers = testutil.NewMockLedgerRepository(env.Shares)
	env.Ledger = &domain.Ledger{OwnerID: env.Owner, Name: "Household", Currency: domain.DefaultCurrency}
	env.Ledgers.AddLedger(env.Ledger)
	env.Shares.AddShare(&domain.LedgerShare{LedgerID: env.Ledger.ID, UserID: env.Editor, Username: "editor", Role: domain.RoleEditor})
	env.Shares.AddShare(&domain.LedgerShare{LedgerID: env.Ledger.ID, UserID: env.Viewer, Username: "viewer", Role: domain.RoleViewer})

	env.Categories = testutil.NewMockCategoryRepository()
	env.Transactions = testutil.NewMockTransactionRepository()
	env.Sink = testutil.NewMockActivitySink()

	access := service.NewAccessService(env.Ledgers, env.Shares)
	sessions := session.NewManager("test-secret", time.Hour)

	env.Auth = service.NewAuthService(env.Users, env.Ledgers, env.Categories, sessions)
	env.Profile = service.NewProfileService(env.Users, access)
	env.Ledger1 = service.NewLedgerService(env.Ledgers, env.Categories, access)
	env.Category = service.NewCategoryService(env.Categories, access, env.Sink)
	env.Transaction = service.NewTransactionService(env.Transactions, env.Categories, access, env.Sink)
	env.Share = service.NewShareService(env.Shares, env.Users, access, env.Sink)
	env.Receipt = service.NewReceiptService(env.Transactions, access, nil, env.Sink)
	env.Activity = service.NewActivityService(testutil.NewMockActivityLogRepository(), access)
	env.Resolver = NewLedgerResolver(env.Auth, env.Profile)
	return env
}

// newRequestContext builds an echo context carrying the authenticated
// user the way the auth middleware does
func newRequestContext(e *echo.Echo, method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != uuid.Nil {
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// decodeError extracts the error envelope from a response body
func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to unmarshal error response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("Expected non-empty error message")
	}
	return resp.Error
}
