package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metalbaza/finledger/internal/domain"
)

// StatsRepository implements usecase.StatsRepository. All queries are
// read-only aggregations over finance_transactions.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Overview returns total income, expense, profit and count for a date range.
func (r *StatsRepository) Overview(ctx context.Context, from, to time.Time) (*domain.StatsOverview, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
			COUNT(*)
		FROM finance_transactions
		WHERE date >= $1 AND date <= $2
	`

	var income, expense pgtype.Numeric
	overview := &domain.StatsOverview{From: from, To: to}

	err := r.pool.QueryRow(ctx, query, timeToPgTimestamptz(from), timeToPgTimestamptz(to)).
		Scan(&income, &expense, &overview.TransactionCount)
	if err != nil {
		return nil, err
	}

	overview.TotalIncome = numericToDecimal(income)
	overview.TotalExpense = numericToDecimal(expense)
	overview.Profit = overview.TotalIncome.Sub(overview.TotalExpense)

	return overview, nil
}

// ByPeriod returns income/expense buckets truncated to day or month.
func (r *StatsRepository) ByPeriod(ctx context.Context, from, to time.Time, granularity string) ([]*domain.PeriodStat, error) {
	format := "YYYY-MM-DD"
	if granularity == "month" {
		format = "YYYY-MM"
	}

	query := `
		SELECT
			TO_CHAR(DATE_TRUNC($3, date), $4) AS period,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM finance_transactions
		WHERE date >= $1 AND date <= $2
		GROUP BY period
		ORDER BY period
	`

	rows, err := r.pool.Query(ctx, query,
		timeToPgTimestamptz(from), timeToPgTimestamptz(to), granularity, format)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.PeriodStat
	for rows.Next() {
		var (
			stat            domain.PeriodStat
			income, expense pgtype.Numeric
		)
		if err := rows.Scan(&stat.Period, &income, &expense); err != nil {
			return nil, err
		}
		stat.Income = numericToDecimal(income)
		stat.Expense = numericToDecimal(expense)
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}

// ByCategory returns per-category totals for one direction, largest first.
// Transactions whose category was deleted are folded into an unnamed bucket.
func (r *StatsRepository) ByCategory(ctx context.Context, typ domain.TransactionType, from, to time.Time) ([]*domain.CategoryStat, error) {
	query := `
		SELECT
			c.id,
			COALESCE(c.name, ''),
			COALESCE(c.color, ''),
			COALESCE(SUM(t.amount), 0),
			COUNT(t.id)
		FROM finance_transactions t
		LEFT JOIN finance_categories c ON c.id = t.category_id
		WHERE t.type = $1 AND t.date >= $2 AND t.date <= $3
		GROUP BY c.id, c.name, c.color
		ORDER BY SUM(t.amount) DESC
	`

	rows, err := r.pool.Query(ctx, query,
		string(typ), timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.CategoryStat
	for rows.Next() {
		var (
			stat  domain.CategoryStat
			total pgtype.Numeric
		)
		if err := rows.Scan(&stat.CategoryID, &stat.CategoryName, &stat.Color, &total, &stat.Count); err != nil {
			return nil, err
		}
		stat.Total = numericToDecimal(total)
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}

// Recent returns the newest transactions for the dashboard feed.
func (r *StatsRepository) Recent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM finance_transactions
		ORDER BY date DESC, created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}
