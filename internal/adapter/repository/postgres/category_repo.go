package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metalbaza/finledger/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, type, color, icon, description, is_system, is_active, sort_order, created_at`

// Create creates a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO finance_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		string(category.Type),
		category.Color,
		category.Icon,
		category.Description,
		category.IsSystem,
		category.IsActive,
		category.SortOrder,
		timeToPgTimestamptz(category.CreatedAt),
	)

	return err
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM finance_categories WHERE id = $1`

	return r.scanCategory(r.pool.QueryRow(ctx, query, id))
}

// GetByNameAndType retrieves a category by its (name, type) pair. Seeding and
// settlement both resolve the system categories through this lookup.
func (r *CategoryRepository) GetByNameAndType(ctx context.Context, name string, typ domain.TransactionType) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM finance_categories WHERE name = $1 AND type = $2`

	return r.scanCategory(r.pool.QueryRow(ctx, query, name, string(typ)))
}

// List retrieves categories, optionally narrowed to one direction.
func (r *CategoryRepository) List(ctx context.Context, typeFilter *domain.TransactionType, activeOnly bool) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM finance_categories WHERE 1=1`
	args := []any{}

	if typeFilter != nil {
		args = append(args, string(*typeFilter))
		query += ` AND type = $1`
	}
	if activeOnly {
		query += ` AND is_active`
	}

	query += ` ORDER BY type, sort_order, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := r.scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Update rewrites the mutable category fields.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE finance_categories
		SET name = $2, color = $3, icon = $4, description = $5, is_active = $6, sort_order = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Color,
		category.Icon,
		category.Description,
		category.IsActive,
		category.SortOrder,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category row. Transactions referencing it keep their
// category_id; the reference is weak and resolved as null on read.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM finance_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepository) scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category  domain.Category
		typ       string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&category.ID,
		&category.Name,
		&typ,
		&category.Color,
		&category.Icon,
		&category.Description,
		&category.IsSystem,
		&category.IsActive,
		&category.SortOrder,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	category.Type = domain.TransactionType(typ)
	category.CreatedAt = createdAt.Time

	return &category, nil
}
