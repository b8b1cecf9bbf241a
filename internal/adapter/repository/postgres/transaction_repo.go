package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, type, category_id, account_id, amount, description,
	order_id, customer_id, date, payment_method, is_automatic, metadata, created_at`

const insertTransactionQuery = `
	INSERT INTO finance_transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

// Create inserts a transaction outside any caller transaction. Used for
// account-less postings that move no balance.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	args, err := insertArgs(txn)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, insertTransactionQuery, args...)

	return mapInsertError(err)
}

// CreateTx inserts a transaction inside the caller's database transaction,
// next to the balance delta it implies.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := insertArgs(txn)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, insertTransactionQuery, args...)

	return mapInsertError(err)
}

// orderSettlementIndex is the partial unique index on (order_id) WHERE
// is_automatic. It is the settlement guard of last resort: two concurrent
// completion callbacks can both pass the ExistsAutomaticForOrder pre-check,
// but only one insert survives.
const orderSettlementIndex = "idx_finance_transactions_order"

func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation && pgErr.ConstraintName == orderSettlementIndex {
		return domain.ErrAlreadySettled
	}

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM finance_transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// List retrieves transactions matching the filter, newest first, plus the
// total match count for pagination.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, int64, error) {
	where, args := listFilterSQL(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM finance_transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + ` FROM finance_transactions` + where +
		` ORDER BY date DESC, created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, txn)
	}

	return txns, total, rows.Err()
}

// listFilterSQL builds the WHERE clause and argument list for List. Free-text
// search matches the description and the name of the attached category.
func listFilterSQL(filter usecase.TransactionFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}

	addArg := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.Type != nil {
		addArg(` AND type = $%d`, string(*filter.Type))
	}
	if filter.CategoryID != nil {
		addArg(` AND category_id = $%d`, *filter.CategoryID)
	}
	if filter.AccountID != nil {
		addArg(` AND account_id = $%d`, *filter.AccountID)
	}
	if filter.From != nil {
		addArg(` AND date >= $%d`, timeToPgTimestamptz(*filter.From))
	}
	if filter.To != nil {
		addArg(` AND date <= $%d`, timeToPgTimestamptz(*filter.To))
	}
	if filter.Search != "" {
		addArg(` AND (description ILIKE $%[1]d OR EXISTS (`+
			`SELECT 1 FROM finance_categories c`+
			` WHERE c.id = finance_transactions.category_id AND c.name ILIKE $%[1]d))`,
			"%"+filter.Search+"%")
	}

	return where, args
}

// Update rewrites the editable fields of a posted transaction. Amount, type
// and account are immutable and deliberately absent from the statement.
func (r *TransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	query := `
		UPDATE finance_transactions
		SET category_id = $2, description = $3, date = $4, payment_method = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		txn.ID,
		txn.CategoryID,
		txn.Description,
		timeToPgTimestamptz(txn.Date),
		string(txn.PaymentMethod),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteTx removes a transaction inside the caller's database transaction,
// next to the balance reversal it implies.
func (r *TransactionRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM finance_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// CountByAccount reports how many transactions reference an account. Account
// deletion downgrades to deactivation when the count is non-zero.
func (r *TransactionRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM finance_transactions WHERE account_id = $1`, accountID,
	).Scan(&count)

	return count, err
}

// ExistsAutomaticForOrder reports whether an order has ever produced an
// automatic posting, including postings whose transaction was later deleted
// from view by a status flip. The guard is "has ever been settled", not
// "is currently completed".
func (r *TransactionRepository) ExistsAutomaticForOrder(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM finance_transactions WHERE order_id = $1 AND is_automatic)`, orderID,
	).Scan(&exists)

	return exists, err
}

func insertArgs(txn *domain.Transaction) ([]any, error) {
	var metadataJSON []byte
	if txn.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(txn.Metadata)
		if err != nil {
			return nil, err
		}
	}

	return []any{
		txn.ID,
		string(txn.Type),
		txn.CategoryID,
		txn.AccountID,
		decimalToNumeric(txn.Amount),
		txn.Description,
		txn.OrderID,
		txn.CustomerID,
		timeToPgTimestamptz(txn.Date),
		string(txn.PaymentMethod),
		txn.IsAutomatic,
		metadataJSON,
		timeToPgTimestamptz(txn.CreatedAt),
	}, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn           domain.Transaction
		typ           string
		amount        pgtype.Numeric
		date          pgtype.Timestamptz
		paymentMethod string
		metadataJSON  []byte
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&typ,
		&txn.CategoryID,
		&txn.AccountID,
		&amount,
		&txn.Description,
		&txn.OrderID,
		&txn.CustomerID,
		&date,
		&paymentMethod,
		&txn.IsAutomatic,
		&metadataJSON,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Type = domain.TransactionType(typ)
	txn.Amount = numericToDecimal(amount)
	txn.Date = date.Time
	txn.PaymentMethod = domain.PaymentMethod(paymentMethod)
	txn.CreatedAt = createdAt.Time

	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &txn.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode transaction metadata: %w", err)
		}
	}

	return &txn, nil
}
