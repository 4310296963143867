package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction belongs to exactly one ledger and one category of that
// ledger. Amount is always positive; Type carries the sign meaning.
type Transaction struct {
	ID           int32           `json:"id"`
	LedgerID     int32           `json:"ledgerId"`
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"category,omitempty"`
	Type         EntryType       `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Note         string          `json:"note,omitempty"`
	Receipt      string          `json:"receipt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Summary aggregates a set of transactions.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// CalculateSummary computes income/expense totals and the resulting
// balance over the given transactions.
func CalculateSummary(transactions []*Transaction) Summary {
	summary := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      decimal.Zero,
	}
	for _, tx := range transactions {
		switch tx.Type {
		case EntryIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case EntryExpense:
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.TransactionCount = len(transactions)
	return summary
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	Create(tx *Transaction) (*Transaction, error)
	GetByID(id int32) (*Transaction, error)
	GetAllByLedger(ledgerID int32) ([]*Transaction, error)
	Update(tx *Transaction) (*Transaction, error)
	Delete(id int32) error
	// GetReceipts returns id and receipt payload for every transaction
	// of the ledger that has a receipt attached.
	GetReceipts(ledgerID int32) (map[int32]string, error)
	ClearReceipts(ledgerID int32) (int64, error)
}
