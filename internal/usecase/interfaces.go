package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
)

// AccountRepository defines data access for finance accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByName(ctx context.Context, name string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Deactivate(ctx context.Context, id string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// ApplyBalanceDelta executes an atomic balance = balance + delta increment.
	// All balance mutations in the system go through this method, always inside
	// a database transaction owned by the calling use case.
	ApplyBalanceDelta(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

// CategoryRepository defines data access for income/expense categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByNameAndType(ctx context.Context, name string, typ domain.TransactionType) (*domain.Category, error)
	List(ctx context.Context, typeFilter *domain.TransactionType, activeOnly bool) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// TransactionFilter narrows the transaction list.
type TransactionFilter struct {
	Type       *domain.TransactionType
	CategoryID *string
	AccountID  *string
	From       *time.Time
	To         *time.Time
	Search     string
	Limit      int
	Offset     int
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	CreateTx(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, int64, error)
	Update(ctx context.Context, txn *domain.Transaction) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	CountByAccount(ctx context.Context, accountID string) (int64, error)
	// ExistsAutomaticForOrder reports whether the order has ever produced an
	// automatic posting. Settlement uses it as its idempotency guard.
	ExistsAutomaticForOrder(ctx context.Context, orderID string) (bool, error)
}

// CustomerRepository defines data access for the customer registry.
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	// RecordOrder upserts the customer by phone and folds one order into the
	// aggregates (total_orders+1, total_spent+amount, last_order_at=at) as a
	// single atomic statement.
	RecordOrder(ctx context.Context, tx Transaction, phone, name string, amount decimal.Decimal, at time.Time) (*domain.Customer, error)
}

// StatsRepository defines the read-side aggregation queries.
type StatsRepository interface {
	Overview(ctx context.Context, from, to time.Time) (*domain.StatsOverview, error)
	ByPeriod(ctx context.Context, from, to time.Time, granularity string) ([]*domain.PeriodStat, error)
	ByCategory(ctx context.Context, typ domain.TransactionType, from, to time.Time) ([]*domain.CategoryStat, error)
	Recent(ctx context.Context, limit int) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore remembers responses keyed by client-supplied idempotency
// keys so retried mutations replay instead of re-executing.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Scheduler coalesces bursts of ledger mutations into one deferred callback
// (stats cache invalidation). Owned and injected, never a package global.
type Scheduler interface {
	Schedule()
	Cancel()
}
