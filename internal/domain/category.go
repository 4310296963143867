package domain

import "time"

// EntryType tags categories and transactions as income or expense.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// Valid reports whether the type is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// Category is a labeled bucket transactions are classified under.
type Category struct {
	ID        int32     `json:"id"`
	LedgerID  int32     `json:"ledgerId"`
	Name      string    `json:"name"`
	Type      EntryType `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StarterCategory describes one entry of the default category set.
type StarterCategory struct {
	Name  string
	Type  EntryType
	Color string
	Icon  string
}

// DefaultCategories is the canonical starter set materialized for every
// new ledger, both at signup and by the get-or-create user ledger path.
var DefaultCategories = []StarterCategory{
	{Name: "Salary", Type: EntryIncome, Color: "#4CAF50", Icon: "briefcase"},
	{Name: "Other Income", Type: EntryIncome, Color: "#8BC34A", Icon: "plus-circle"},
	{Name: "Groceries", Type: EntryExpense, Color: "#FF9800", Icon: "shopping-cart"},
	{Name: "Dining", Type: EntryExpense, Color: "#F44336", Icon: "utensils"},
	{Name: "Transport", Type: EntryExpense, Color: "#2196F3", Icon: "bus"},
	{Name: "Housing", Type: EntryExpense, Color: "#795548", Icon: "home"},
	{Name: "Utilities", Type: EntryExpense, Color: "#607D8B", Icon: "zap"},
	{Name: "Health", Type: EntryExpense, Color: "#E91E63", Icon: "heart"},
	{Name: "Entertainment", Type: EntryExpense, Color: "#9C27B0", Icon: "film"},
	{Name: "Shopping", Type: EntryExpense, Color: "#00BCD4", Icon: "shopping-bag"},
	{Name: "Other", Type: EntryExpense, Color: "#9E9E9E", Icon: "more-horizontal"},
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	CreateBatch(ledgerID int32, starters []StarterCategory) error
	GetByID(id int32) (*Category, error)
	GetAllByLedger(ledgerID int32) ([]*Category, error)
	Update(id int32, name string, entryType EntryType, color, icon string) (*Category, error)
	Delete(id int32) error
	CountTransactions(id int32) (int64, error)
}
