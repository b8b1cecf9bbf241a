package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/infrastructure/metrics"
)

// TransactionUseCase handles the transaction store: manual postings, edits and
// reversals. Every mutation that touches an account balance runs as one
// database transaction together with the row write.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	categoryRepo    CategoryRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	sched           Scheduler
	logger          zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	sched Scheduler,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		idGen:           idGen,
		metrics:         m,
		sched:           sched,
		logger:          logger,
	}
}

// CreateTransactionInput represents input for a manual posting.
type CreateTransactionInput struct {
	Type          domain.TransactionType
	CategoryID    *string
	AccountID     *string
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	PaymentMethod domain.PaymentMethod
	Metadata      map[string]any
}

// CreateTransaction validates and records a money movement. When an account is
// attached, the row insert and the balance increment commit or roll back as a
// unit.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		Type:          input.Type,
		CategoryID:    input.CategoryID,
		AccountID:     input.AccountID,
		Amount:        input.Amount,
		Description:   input.Description,
		Date:          date,
		PaymentMethod: input.PaymentMethod,
		Metadata:      input.Metadata,
		CreatedAt:     now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.checkCategory(ctx, input.CategoryID, input.Type); err != nil {
		return nil, err
	}

	if input.AccountID == nil {
		if err := uc.transactionRepo.Create(ctx, txn); err != nil {
			return nil, err
		}
	} else {
		if _, err := uc.accountRepo.GetByID(ctx, *input.AccountID); err != nil {
			return nil, err
		}

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
			return nil, err
		}

		if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, *input.AccountID, txn.SignedAmount(), now); err != nil {
			return nil, err
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
	}

	uc.metrics.TransactionsCreated.WithLabelValues(string(txn.Type), metrics.SourceManual).Inc()
	uc.notifyMutation()

	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactions lists transactions matching the filter, newest first, and
// returns the total match count for pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, int64, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.transactionRepo.List(ctx, filter)
}

// UpdateTransactionInput represents a partial update of a posted transaction.
// Amount, Type and AccountID are present only so that attempts to change them
// can be rejected explicitly: a posted movement is immutable in value and
// account; corrections go through delete + recreate.
type UpdateTransactionInput struct {
	Description    *string
	Date           *time.Time
	PaymentMethod  *domain.PaymentMethod
	CategoryID     *string
	RemoveCategory bool

	Amount    *decimal.Decimal
	Type      *domain.TransactionType
	AccountID *string
}

// UpdateTransaction edits the descriptive fields of a posting.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	if input.Amount != nil || input.Type != nil || input.AccountID != nil {
		return nil, domain.ErrPostedImmutable
	}

	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		txn.Description = *input.Description
	}

	if input.Date != nil {
		txn.Date = input.Date.UTC()
	}

	if input.PaymentMethod != nil {
		if !domain.ValidPaymentMethod(*input.PaymentMethod) {
			return nil, domain.ErrInvalidPaymentMethod
		}
		txn.PaymentMethod = *input.PaymentMethod
	}

	switch {
	case input.RemoveCategory:
		txn.CategoryID = nil
	case input.CategoryID != nil:
		if err := uc.checkCategory(ctx, input.CategoryID, txn.Type); err != nil {
			return nil, err
		}
		txn.CategoryID = input.CategoryID
	}

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// DeleteTransaction removes a posting and reverses exactly the balance delta
// it originally applied.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	if txn.AccountID != nil {
		if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, *txn.AccountID, txn.SignedAmount().Neg(), time.Now().UTC()); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.metrics.TransactionsDeleted.Inc()
	uc.notifyMutation()

	return nil
}

// checkCategory enforces that the category, when set, exists and matches the
// transaction direction.
func (uc *TransactionUseCase) checkCategory(ctx context.Context, categoryID *string, typ domain.TransactionType) error {
	if categoryID == nil {
		return nil
	}

	category, err := uc.categoryRepo.GetByID(ctx, *categoryID)
	if err != nil {
		return err
	}

	if category.Type != typ {
		return domain.ErrCategoryTypeMismatch
	}

	return nil
}

func (uc *TransactionUseCase) notifyMutation() {
	if uc.sched != nil {
		uc.sched.Schedule()
	}
}
