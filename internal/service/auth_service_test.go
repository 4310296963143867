package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/session"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
)

func newAuthFixture() (*AuthService, *testutil.MockUserRepository, *testutil.MockLedgerRepository, *testutil.MockCategoryRepository) {
	users := testutil.NewMockUserRepository()
	shares := testutil.NewMockShareRepository()
	ledgers := testutil.NewMockLedgerRepository(shares)
	categories := testutil.NewMockCategoryRepository()
	sessions := session.NewManager("test-secret", time.Hour)
	return NewAuthService(users, ledgers, categories, sessions), users, ledgers, categories
}

func TestSignup_SeedsLedgerAndCategories(t *testing.T) {
	svc, _, ledgers, categories := newAuthFixture()

	user, err := svc.Signup("alice", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Expected username alice, got %s", user.Username)
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter22" {
		t.Error("Expected password to be stored hashed")
	}

	owned, err := ledgers.GetOwnedByUser(user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(owned) != 1 {
		t.Fatalf("Expected 1 seeded ledger, got %d", len(owned))
	}
	if owned[0].Name != "alice's Ledger" {
		t.Errorf("Expected seeded ledger name, got %q", owned[0].Name)
	}

	seeded, err := categories.GetAllByLedger(owned[0].ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(seeded) != len(domain.DefaultCategories) {
		t.Errorf("Expected %d starter categories, got %d", len(domain.DefaultCategories), len(seeded))
	}
}

func TestSignup_UsernameTooShort(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Signup("ab", "hunter22"); !errors.Is(err, domain.ErrUsernameTooShort) {
		t.Fatalf("Expected ErrUsernameTooShort, got %v", err)
	}
}

func TestSignup_PasswordTooShort(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Signup("alice", "short"); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("Expected ErrPasswordTooShort, got %v", err)
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Signup("alice", "hunter22"); err != nil {
		t.Fatalf("Expected first signup to succeed, got %v", err)
	}
	if _, err := svc.Signup("Alice", "hunter22"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	created, err := svc.Signup("alice", "hunter22")
	if err != nil {
		t.Fatalf("Expected signup to succeed, got %v", err)
	}

	token, user, err := svc.Login("alice", "hunter22")
	if err != nil {
		t.Fatalf("Expected login to succeed, got %v", err)
	}
	if token == "" {
		t.Error("Expected a session token")
	}
	if user.ID != created.ID {
		t.Errorf("Expected user %s, got %s", created.ID, user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Signup("alice", "hunter22"); err != nil {
		t.Fatalf("Expected signup to succeed, got %v", err)
	}
	if _, _, err := svc.Login("alice", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("Expected ErrInvalidCredential, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, _, err := svc.Login("nobody", "hunter22"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("Expected ErrInvalidCredential, got %v", err)
	}
}

func TestGetOrCreateUserLedger_SeedsOnFirstAccess(t *testing.T) {
	svc, users, ledgers, _ := newAuthFixture()

	user, _ := users.Create(&domain.User{Username: "bob", PasswordHash: "x"})

	ledger, err := svc.GetOrCreateUserLedger(user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ledger.OwnerID != user.ID {
		t.Errorf("Expected ledger owned by bob, got %s", ledger.OwnerID)
	}

	again, err := svc.GetOrCreateUserLedger(user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if again.ID != ledger.ID {
		t.Errorf("Expected same ledger on second call, got %d and %d", ledger.ID, again.ID)
	}

	owned, _ := ledgers.GetOwnedByUser(user.ID)
	if len(owned) != 1 {
		t.Errorf("Expected exactly 1 ledger, got %d", len(owned))
	}
}
