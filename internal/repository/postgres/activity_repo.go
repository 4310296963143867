package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// ActivityLogRepository implements domain.ActivityLogRepository using PostgreSQL
type ActivityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

// Append inserts an activity log entry. Entries are never updated or deleted.
func (r *ActivityLogRepository) Append(entry *domain.ActivityLogEntry) error {
	ctx := context.Background()
	return r.pool.QueryRow(ctx,
		`INSERT INTO activity_log (ledger_id, user_id, action, entity_type, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		entry.LedgerID, entry.UserID, entry.Action, entry.EntityType, entry.Message,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// GetByLedger retrieves the most recent entries of a ledger
func (r *ActivityLogRepository) GetByLedger(ledgerID int32, limit int) ([]*domain.ActivityLogEntry, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.ledger_id, a.user_id, u.username, a.action, a.entity_type, a.message, a.created_at
		 FROM activity_log a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.ledger_id = $1
		 ORDER BY a.created_at DESC, a.id DESC
		 LIMIT $2`, ledgerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ActivityLogEntry
	for rows.Next() {
		var entry domain.ActivityLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.LedgerID,
			&entry.UserID,
			&entry.Username,
			&entry.Action,
			&entry.EntityType,
			&entry.Message,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
