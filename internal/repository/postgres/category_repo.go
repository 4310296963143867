package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, ledger_id, name, type, color, icon, created_at, updated_at`

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO categories (ledger_id, name, type, color, icon)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+categoryColumns,
		category.LedgerID, category.Name, category.Type, category.Color, category.Icon,
	)
	created, err := scanCategory(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, err
	}
	return created, nil
}

// CreateBatch inserts the starter categories for a new ledger
func (r *CategoryRepository) CreateBatch(ledgerID int32, starters []domain.StarterCategory) error {
	ctx := context.Background()
	batch := &pgx.Batch{}
	for _, s := range starters {
		batch.Queue(
			`INSERT INTO categories (ledger_id, name, type, color, icon) VALUES ($1, $2, $3, $4, $5)`,
			ledgerID, s.Name, s.Type, s.Color, s.Icon,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range starters {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a category by id
func (r *CategoryRepository) GetByID(id int32) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAllByLedger retrieves all categories of a ledger
func (r *CategoryRepository) GetAllByLedger(ledgerID int32) ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE ledger_id = $1 ORDER BY type, name`, ledgerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update updates a category's attributes
func (r *CategoryRepository) Update(id int32, name string, entryType domain.EntryType, color, icon string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx,
		`UPDATE categories
		 SET name = $2, type = $3, color = $4, icon = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+categoryColumns,
		id, name, entryType, color, icon,
	)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// CountTransactions counts transactions referencing the category
func (r *CategoryRepository) CountTransactions(id int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID,
		&category.LedgerID,
		&category.Name,
		&category.Type,
		&category.Color,
		&category.Icon,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
