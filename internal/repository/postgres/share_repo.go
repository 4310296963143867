package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// ShareRepository implements domain.ShareRepository using PostgreSQL
type ShareRepository struct {
	pool *pgxpool.Pool
}

// NewShareRepository creates a new ShareRepository
func NewShareRepository(pool *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{pool: pool}
}

const shareSelect = `
	SELECT s.id, s.ledger_id, s.user_id, u.username, s.role, s.created_at, s.updated_at
	FROM ledger_shares s
	JOIN users u ON u.id = s.user_id`

// Create inserts a new share. The (ledger, user) pair is unique.
func (r *ShareRepository) Create(share *domain.LedgerShare) (*domain.LedgerShare, error) {
	ctx := context.Background()
	var id int32
	err := r.pool.QueryRow(ctx,
		`INSERT INTO ledger_shares (ledger_id, user_id, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		share.LedgerID, share.UserID, share.Role,
	).Scan(&id)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrShareExists
		}
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves a share by id
func (r *ShareRepository) GetByID(id int32) (*domain.LedgerShare, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, shareSelect+` WHERE s.id = $1`, id)
	share, err := scanShare(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}
	return share, nil
}

// GetByLedger retrieves all shares of a ledger
func (r *ShareRepository) GetByLedger(ledgerID int32) ([]*domain.LedgerShare, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, shareSelect+` WHERE s.ledger_id = $1 ORDER BY s.created_at`, ledgerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []*domain.LedgerShare
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, rows.Err()
}

// GetByLedgerAndUser retrieves the share of a given user on a given ledger
func (r *ShareRepository) GetByLedgerAndUser(ledgerID int32, userID uuid.UUID) (*domain.LedgerShare, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, shareSelect+` WHERE s.ledger_id = $1 AND s.user_id = $2`, ledgerID, userID)
	share, err := scanShare(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}
	return share, nil
}

// UpdateRole changes a share's role
func (r *ShareRepository) UpdateRole(id int32, role domain.ShareRole) (*domain.LedgerShare, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE ledger_shares SET role = $2, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrShareNotFound
	}
	return r.GetByID(id)
}

// Delete revokes a share
func (r *ShareRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_shares WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShareNotFound
	}
	return nil
}

func scanShare(row pgx.Row) (*domain.LedgerShare, error) {
	var share domain.LedgerShare
	err := row.Scan(
		&share.ID,
		&share.LedgerID,
		&share.UserID,
		&share.Username,
		&share.Role,
		&share.CreatedAt,
		&share.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &share, nil
}
