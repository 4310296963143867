package service

import (
	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
)

// ledgerFixture wires one ledger with an owner, an editor, a viewer
// and a user with no access at all.
type ledgerFixture struct {
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
	Access       *AccessService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		Owner:    uuid.New(),
		Editor:   uuid.New(),
		Viewer:   uuid.New(),
		Stranger: uuid.New(),
	}
	f.Users = testutil.NewMockUserRepository()
	f.Users.AddUser(&domain.User{ID: f.Owner, Username: "owner"})
	f.Users.AddUser(&domain.User{ID: f.Editor, Username: "editor"})
	f.Users.AddUser(&domain.User{ID: f.Viewer, Username: "viewer"})
	f.Users.AddUser(&domain.User{ID: f.Stranger, Username: "stranger"})

	f.Shares = testutil.NewMockShareRepository()
	f.Ledgers = testutil.NewMockLedgerRepository(f.Shares)
	f.Ledger = &domain.Ledger{OwnerID: f.Owner, Name: "Household", Currency: domain.DefaultCurrency}
	f.Ledgers.AddLedger(f.Ledger)

	f.Shares.AddShare(&domain.LedgerShare{LedgerID: f.Ledger.ID, UserID: f.Editor, Username: "editor", Role: domain.RoleEditor})
	f.Shares.AddShare(&domain.LedgerShare{LedgerID: f.Ledger.ID, UserID: f.Viewer, Username: "viewer", Role: domain.RoleViewer})

	f.Categories = testutil.NewMockCategoryRepository()
	f.Transactions = testutil.NewMockTransactionRepository()
	f.Access = NewAccessService(f.Ledgers, f.Shares)
	return f
}

func (f *ledgerFixture) addCategory(name string, entryType domain.EntryType) *domain.Category {
	category := &domain.Category{LedgerID: f.Ledger.ID, Name: name, Type: entryType}
	f.Categories.AddCategory(category)
	return category
}
