package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionSelect = `
	SELECT t.id, t.ledger_id, t.category_id, c.name, t.type, t.amount, t.date,
	       t.description, t.note, COALESCE(t.receipt, ''), t.created_at, t.updated_at
	FROM transactions t
	JOIN categories c ON c.id = t.category_id`

// Create inserts a new transaction
func (r *TransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	var id int32
	err := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (ledger_id, category_id, type, amount, date, description, note, receipt)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		 RETURNING id`,
		tx.LedgerID, tx.CategoryID, tx.Type, tx.Amount, tx.Date, tx.Description, tx.Note, tx.Receipt,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves a transaction by id
func (r *TransactionRepository) GetByID(id int32) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// GetAllByLedger retrieves all transactions of a ledger, newest first
func (r *TransactionRepository) GetAllByLedger(ledgerID int32) ([]*domain.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		transactionSelect+` WHERE t.ledger_id = $1 ORDER BY t.date DESC, t.id DESC`, ledgerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// Update updates a transaction
func (r *TransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET category_id = $2, type = $3, amount = $4, date = $5,
		     description = $6, note = $7, receipt = NULLIF($8, ''), updated_at = NOW()
		 WHERE id = $1`,
		tx.ID, tx.CategoryID, tx.Type, tx.Amount, tx.Date, tx.Description, tx.Note, tx.Receipt,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return r.GetByID(tx.ID)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// GetReceipts returns the receipt payload of every transaction of the
// ledger that has one attached, keyed by transaction id
func (r *TransactionRepository) GetReceipts(ledgerID int32) (map[int32]string, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, receipt FROM transactions
		 WHERE ledger_id = $1 AND receipt IS NOT NULL AND receipt <> ''`, ledgerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := make(map[int32]string)
	for rows.Next() {
		var id int32
		var receipt string
		if err := rows.Scan(&id, &receipt); err != nil {
			return nil, err
		}
		receipts[id] = receipt
	}
	return receipts, rows.Err()
}

// ClearReceipts wipes all receipt blobs of a ledger and returns the
// number of affected transactions
func (r *TransactionRepository) ClearReceipts(ledgerID int32) (int64, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions SET receipt = NULL, updated_at = NOW()
		 WHERE ledger_id = $1 AND receipt IS NOT NULL`, ledgerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.LedgerID,
		&tx.CategoryID,
		&tx.CategoryName,
		&tx.Type,
		&tx.Amount,
		&tx.Date,
		&tx.Description,
		&tx.Note,
		&tx.Receipt,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
