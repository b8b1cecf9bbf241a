package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool *pgxpool.Pool
	ids  usecase.IDGenerator
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool, ids usecase.IDGenerator) *CustomerRepository {
	return &CustomerRepository{pool: pool, ids: ids}
}

const customerColumns = `id, phone, name, total_orders, total_spent, last_order_at, created_at, updated_at`

// GetByPhone retrieves a customer by phone number.
func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`

	return r.scanCustomer(r.pool.QueryRow(ctx, query, phone))
}

// RecordOrder upserts the customer by phone and folds one order into the
// aggregates in a single statement, so concurrent settlements cannot lose
// an increment.
func (r *CustomerRepository) RecordOrder(ctx context.Context, tx usecase.Transaction, phone, name string, amount decimal.Decimal, at time.Time) (*domain.Customer, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, 1, $4, $5, $6, $6)
		ON CONFLICT (phone) DO UPDATE
		SET name         = COALESCE(NULLIF(EXCLUDED.name, ''), customers.name),
		    total_orders = customers.total_orders + 1,
		    total_spent  = customers.total_spent + EXCLUDED.total_spent,
		    last_order_at = EXCLUDED.last_order_at,
		    updated_at   = EXCLUDED.updated_at
		RETURNING ` + customerColumns + `
	`

	row := pgxTx.QueryRow(ctx, query,
		r.ids.Generate(),
		phone,
		name,
		decimalToNumeric(amount),
		timeToPgTimestamptz(at),
		timeToPgTimestamptz(at),
	)

	return r.scanCustomer(row)
}

func (r *CustomerRepository) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		customer    domain.Customer
		totalSpent  pgtype.Numeric
		lastOrderAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&customer.ID,
		&customer.Phone,
		&customer.Name,
		&customer.TotalOrders,
		&totalSpent,
		&lastOrderAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, err
	}

	customer.TotalSpent = numericToDecimal(totalSpent)
	if lastOrderAt.Valid {
		t := lastOrderAt.Time
		customer.LastOrderAt = &t
	}
	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}
