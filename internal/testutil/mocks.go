// Package testutil provides map-backed mock repositories for service
// and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[uuid.UUID]*domain.User
	CreateFn func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[uuid.UUID]*domain.User)}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	for _, existing := range m.Users {
		if strings.EqualFold(existing.Username, user.Username) {
			return nil, domain.ErrUsernameTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username, case-insensitive
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	for _, user := range m.Users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// UpdatePreferences updates the user's display preferences
func (m *MockUserRepository) UpdatePreferences(id uuid.UUID, prefs domain.Preferences) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.DarkMode = prefs.DarkMode
	user.CurrentLedgerID = prefs.CurrentLedgerID
	user.UpdatedAt = time.Now()
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.ID] = user
}

// MockLedgerRepository is a mock implementation of domain.LedgerRepository
type MockLedgerRepository struct {
	Ledgers map[int32]*domain.Ledger
	Shares  *MockShareRepository
	NextID  int32
}

// NewMockLedgerRepository creates a new MockLedgerRepository. The share
// repository is consulted for participation in GetAllForUser.
func NewMockLedgerRepository(shares *MockShareRepository) *MockLedgerRepository {
	return &MockLedgerRepository{
		Ledgers: make(map[int32]*domain.Ledger),
		Shares:  shares,
		NextID:  1,
	}
}

// Create creates a new ledger
func (m *MockLedgerRepository) Create(ledger *domain.Ledger) (*domain.Ledger, error) {
	ledger.ID = m.NextID
	m.NextID++
	ledger.CreatedAt = time.Now()
	ledger.UpdatedAt = ledger.CreatedAt
	m.Ledgers[ledger.ID] = ledger
	return ledger, nil
}

// GetByID retrieves a ledger by ID
func (m *MockLedgerRepository) GetByID(id int32) (*domain.Ledger, error) {
	if ledger, ok := m.Ledgers[id]; ok {
		return ledger, nil
	}
	return nil, domain.ErrLedgerNotFound
}

// GetAllForUser returns ledgers the user owns or participates in
func (m *MockLedgerRepository) GetAllForUser(userID uuid.UUID) ([]*domain.Ledger, error) {
	var ledgers []*domain.Ledger
	for _, ledger := range m.Ledgers {
		if ledger.OwnerID == userID {
			ledgers = append(ledgers, ledger)
			continue
		}
		if m.Shares != nil {
			if _, err := m.Shares.GetByLedgerAndUser(ledger.ID, userID); err == nil {
				ledgers = append(ledgers, ledger)
			}
		}
	}
	sortLedgers(ledgers)
	return ledgers, nil
}

// GetOwnedByUser returns ledgers owned by the user
func (m *MockLedgerRepository) GetOwnedByUser(userID uuid.UUID) ([]*domain.Ledger, error) {
	var ledgers []*domain.Ledger
	for _, ledger := range m.Ledgers {
		if ledger.OwnerID == userID {
			ledgers = append(ledgers, ledger)
		}
	}
	sortLedgers(ledgers)
	return ledgers, nil
}

// Rename updates a ledger's name
func (m *MockLedgerRepository) Rename(id int32, name string) (*domain.Ledger, error) {
	ledger, ok := m.Ledgers[id]
	if !ok {
		return nil, domain.ErrLedgerNotFound
	}
	ledger.Name = name
	ledger.UpdatedAt = time.Now()
	return ledger, nil
}

// UpdateCurrency updates a ledger's currency
func (m *MockLedgerRepository) UpdateCurrency(id int32, currency string) (*domain.Ledger, error) {
	ledger, ok := m.Ledgers[id]
	if !ok {
		return nil, domain.ErrLedgerNotFound
	}
	ledger.Currency = currency
	ledger.UpdatedAt = time.Now()
	return ledger, nil
}

// AddLedger adds a ledger to the mock repository (helper for tests)
func (m *MockLedgerRepository) AddLedger(ledger *domain.Ledger) {
	if ledger.ID == 0 {
		ledger.ID = m.NextID
	}
	if ledger.ID >= m.NextID {
		m.NextID = ledger.ID + 1
	}
	m.Ledgers[ledger.ID] = ledger
}

func sortLedgers(ledgers []*domain.Ledger) {
	sort.Slice(ledgers, func(i, j int) bool { return ledgers[i].ID < ledgers[j].ID })
}

// MockShareRepository is a mock implementation of domain.ShareRepository
type MockShareRepository struct {
	Shares map[int32]*domain.LedgerShare
	NextID int32
}

// NewMockShareRepository creates a new MockShareRepository
func NewMockShareRepository() *MockShareRepository {
	return &MockShareRepository{
		Shares: make(map[int32]*domain.LedgerShare),
		NextID: 1,
	}
}

// Create creates a new share
func (m *MockShareRepository) Create(share *domain.LedgerShare) (*domain.LedgerShare, error) {
	for _, existing := range m.Shares {
		if existing.LedgerID == share.LedgerID && existing.UserID == share.UserID {
			return nil, domain.ErrShareExists
		}
	}
	share.ID = m.NextID
	m.NextID++
	share.CreatedAt = time.Now()
	share.UpdatedAt = share.CreatedAt
	m.Shares[share.ID] = share
	return share, nil
}

// GetByID retrieves a share by ID
func (m *MockShareRepository) GetByID(id int32) (*domain.LedgerShare, error) {
	if share, ok := m.Shares[id]; ok {
		return share, nil
	}
	return nil, domain.ErrShareNotFound
}

// GetByLedger retrieves all shares of a ledger
func (m *MockShareRepository) GetByLedger(ledgerID int32) ([]*domain.LedgerShare, error) {
	var shares []*domain.LedgerShare
	for _, share := range m.Shares {
		if share.LedgerID == ledgerID {
			shares = append(shares, share)
		}
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].ID < shares[j].ID })
	return shares, nil
}

// GetByLedgerAndUser retrieves the share of a given user on a given ledger
func (m *MockShareRepository) GetByLedgerAndUser(ledgerID int32, userID uuid.UUID) (*domain.LedgerShare, error) {
	for _, share := range m.Shares {
		if share.LedgerID == ledgerID && share.UserID == userID {
			return share, nil
		}
	}
	return nil, domain.ErrShareNotFound
}

// UpdateRole updates a share's role
func (m *MockShareRepository) UpdateRole(id int32, role domain.ShareRole) (*domain.LedgerShare, error) {
	share, ok := m.Shares[id]
	if !ok {
		return nil, domain.ErrShareNotFound
	}
	share.Role = role
	share.UpdatedAt = time.Now()
	return share, nil
}

// Delete removes a share
func (m *MockShareRepository) Delete(id int32) error {
	if _, ok := m.Shares[id]; !ok {
		return domain.ErrShareNotFound
	}
	delete(m.Shares, id)
	return nil
}

// AddShare adds a share to the mock repository (helper for tests)
func (m *MockShareRepository) AddShare(share *domain.LedgerShare) {
	if share.ID == 0 {
		share.ID = m.NextID
	}
	if share.ID >= m.NextID {
		m.NextID = share.ID + 1
	}
	m.Shares[share.ID] = share
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	TxCounts   map[int32]int64
	NextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		TxCounts:   make(map[int32]int64),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, existing := range m.Categories {
		if existing.LedgerID == category.LedgerID && strings.EqualFold(existing.Name, category.Name) {
			return nil, domain.ErrCategoryNameTaken
		}
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// CreateBatch creates the starter categories for a ledger
func (m *MockCategoryRepository) CreateBatch(ledgerID int32, starters []domain.StarterCategory) error {
	for _, starter := range starters {
		_, err := m.Create(&domain.Category{
			LedgerID: ledgerID,
			Name:     starter.Name,
			Type:     starter.Type,
			Color:    starter.Color,
			Icon:     starter.Icon,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByLedger retrieves all categories of a ledger
func (m *MockCategoryRepository) GetAllByLedger(ledgerID int32) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.Categories {
		if category.LedgerID == ledgerID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(id int32, name string, entryType domain.EntryType, color, icon string) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.Name = name
	category.Type = entryType
	category.Color = color
	category.Icon = icon
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int32) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// CountTransactions returns the number of transactions referencing the category
func (m *MockCategoryRepository) CountTransactions(id int32) (int64, error) {
	return m.TxCounts[id], nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == 0 {
		category.ID = m.NextID
	}
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	tx.ID = m.NextID
	m.NextID++
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id int32) (*domain.Transaction, error) {
	if tx, ok := m.Transactions[id]; ok {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetAllByLedger retrieves all transactions of a ledger, newest first
func (m *MockTransactionRepository) GetAllByLedger(ledgerID int32) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.LedgerID == ledgerID {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID > transactions[j].ID })
	return transactions, nil
}

// Update updates an existing transaction
func (m *MockTransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	existing, ok := m.Transactions[tx.ID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	tx.LedgerID = existing.LedgerID
	tx.CreatedAt = existing.CreatedAt
	tx.UpdatedAt = time.Now()
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id int32) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// GetReceipts returns receipts of the ledger keyed by transaction ID
func (m *MockTransactionRepository) GetReceipts(ledgerID int32) (map[int32]string, error) {
	receipts := make(map[int32]string)
	for id, tx := range m.Transactions {
		if tx.LedgerID == ledgerID && tx.Receipt != "" {
			receipts[id] = tx.Receipt
		}
	}
	return receipts, nil
}

// ClearReceipts wipes all receipts of a ledger
func (m *MockTransactionRepository) ClearReceipts(ledgerID int32) (int64, error) {
	var cleared int64
	for _, tx := range m.Transactions {
		if tx.LedgerID == ledgerID && tx.Receipt != "" {
			tx.Receipt = ""
			cleared++
		}
	}
	return cleared, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	if tx.ID == 0 {
		tx.ID = m.NextID
	}
	if tx.ID >= m.NextID {
		m.NextID = tx.ID + 1
	}
	m.Transactions[tx.ID] = tx
}

// MockActivityLogRepository is a mock implementation of domain.ActivityLogRepository
type MockActivityLogRepository struct {
	Entries  []*domain.ActivityLogEntry
	NextID   int32
	AppendFn func(entry *domain.ActivityLogEntry) error
}

// NewMockActivityLogRepository creates a new MockActivityLogRepository
func NewMockActivityLogRepository() *MockActivityLogRepository {
	return &MockActivityLogRepository{NextID: 1}
}

// Append stores an activity entry
func (m *MockActivityLogRepository) Append(entry *domain.ActivityLogEntry) error {
	if m.AppendFn != nil {
		return m.AppendFn(entry)
	}
	entry.ID = m.NextID
	m.NextID++
	entry.CreatedAt = time.Now()
	m.Entries = append(m.Entries, entry)
	return nil
}

// GetByLedger retrieves the most recent entries of a ledger
func (m *MockActivityLogRepository) GetByLedger(ledgerID int32, limit int) ([]*domain.ActivityLogEntry, error) {
	var entries []*domain.ActivityLogEntry
	for i := len(m.Entries) - 1; i >= 0 && len(entries) < limit; i-- {
		if m.Entries[i].LedgerID == ledgerID {
			entries = append(entries, m.Entries[i])
		}
	}
	return entries, nil
}

// MockActivitySink records activity entries in memory
type MockActivitySink struct {
	mu      sync.Mutex
	Entries []*domain.ActivityLogEntry
}

// NewMockActivitySink creates a new MockActivitySink
func NewMockActivitySink() *MockActivitySink {
	return &MockActivitySink{}
}

// Record stores the entry
func (m *MockActivitySink) Record(_ context.Context, entry *domain.ActivityLogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
}

// Recorded returns a snapshot of the recorded entries
func (m *MockActivitySink) Recorded() []*domain.ActivityLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ActivityLogEntry, len(m.Entries))
	copy(out, m.Entries)
	return out
}

// MockReceiptArchive records archived receipt payloads in memory
type MockReceiptArchive struct {
	Objects map[string][]byte
	Err     error
}

// NewMockReceiptArchive creates a new MockReceiptArchive
func NewMockReceiptArchive() *MockReceiptArchive {
	return &MockReceiptArchive{Objects: make(map[string][]byte)}
}

// Archive stores the payload under the object path
func (m *MockReceiptArchive) Archive(_ context.Context, objectPath string, payload []byte, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Objects[objectPath] = payload
	return nil
}
