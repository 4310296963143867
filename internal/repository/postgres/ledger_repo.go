package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// LedgerRepository implements domain.LedgerRepository using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const ledgerColumns = `id, owner_id, name, currency, created_at, updated_at`

// Create inserts a new ledger
func (r *LedgerRepository) Create(ledger *domain.Ledger) (*domain.Ledger, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO ledgers (owner_id, name, currency)
		 VALUES ($1, $2, $3)
		 RETURNING `+ledgerColumns,
		ledger.OwnerID, ledger.Name, ledger.Currency,
	)
	return scanLedger(row)
}

// GetByID retrieves a ledger by id
func (r *LedgerRepository) GetByID(id int32) (*domain.Ledger, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE id = $1`, id)
	ledger, err := scanLedger(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return ledger, nil
}

// GetAllForUser returns ledgers the user owns or participates in via a share
func (r *LedgerRepository) GetAllForUser(userID uuid.UUID) ([]*domain.Ledger, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers
		 WHERE owner_id = $1
		    OR EXISTS (SELECT 1 FROM ledger_shares s WHERE s.ledger_id = ledgers.id AND s.user_id = $1)
		 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLedgers(rows)
}

// GetOwnedByUser returns ledgers owned by the user, oldest first
func (r *LedgerRepository) GetOwnedByUser(userID uuid.UUID) ([]*domain.Ledger, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE owner_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLedgers(rows)
}

// Rename updates a ledger's name
func (r *LedgerRepository) Rename(id int32, name string) (*domain.Ledger, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`UPDATE ledgers SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING `+ledgerColumns,
		id, name)
	ledger, err := scanLedger(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return ledger, nil
}

// UpdateCurrency updates a ledger's currency code
func (r *LedgerRepository) UpdateCurrency(id int32, currency string) (*domain.Ledger, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`UPDATE ledgers SET currency = $2, updated_at = NOW() WHERE id = $1 RETURNING `+ledgerColumns,
		id, currency)
	ledger, err := scanLedger(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return ledger, nil
}

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var ledger domain.Ledger
	err := row.Scan(
		&ledger.ID,
		&ledger.OwnerID,
		&ledger.Name,
		&ledger.Currency,
		&ledger.CreatedAt,
		&ledger.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

func scanLedgers(rows pgx.Rows) ([]*domain.Ledger, error) {
	var ledgers []*domain.Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}
	return ledgers, rows.Err()
}
