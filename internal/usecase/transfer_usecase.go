package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/infrastructure/metrics"
)

// TransferUseCase moves funds between two accounts by creating a linked pair
// of transactions. All five sub-steps (two inserts, two balance increments,
// category resolution) run inside one database transaction.
type TransferUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	sched           Scheduler
	logger          zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	sched Scheduler,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		metrics:         m,
		sched:           sched,
		logger:          logger,
	}
}

// TransferInput represents input for an inter-account transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
}

// TransferResult carries the two legs of a completed transfer.
type TransferResult struct {
	Expense *domain.Transaction
	Income  *domain.Transaction
}

// Transfer debits the source account and credits the destination account with
// the same amount. The sum of all balances in the system is unchanged.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	expenseCategory, err := uc.categoryRepo.GetByNameAndType(ctx, domain.CategoryOtherExpense, domain.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	incomeCategory, err := uc.categoryRepo.GetByNameAndType(ctx, domain.CategoryOtherIncome, domain.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	description := input.Description
	if description == "" {
		description = "Перевод между счетами"
	}

	// Lock both accounts in sorted order so that two concurrent opposite
	// transfers cannot deadlock.
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	expense := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		Type:          domain.TransactionTypeExpense,
		CategoryID:    &expenseCategory.ID,
		AccountID:     &input.FromAccountID,
		Amount:        input.Amount,
		Description:   description + " (списание)",
		Date:          date,
		PaymentMethod: domain.PaymentMethodTransfer,
		CreatedAt:     now,
	}

	income := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		Type:          domain.TransactionTypeIncome,
		CategoryID:    &incomeCategory.ID,
		AccountID:     &input.ToAccountID,
		Amount:        input.Amount,
		Description:   description + " (зачисление)",
		Date:          date,
		PaymentMethod: domain.PaymentMethodTransfer,
		CreatedAt:     now,
	}

	if err := uc.transactionRepo.CreateTx(ctx, tx, expense); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.CreateTx(ctx, tx, income); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, input.FromAccountID, input.Amount.Neg(), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, input.ToAccountID, input.Amount, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.metrics.TransfersCreated.Inc()
	uc.metrics.TransactionsCreated.WithLabelValues(string(domain.TransactionTypeExpense), metrics.SourceTransfer).Inc()
	uc.metrics.TransactionsCreated.WithLabelValues(string(domain.TransactionTypeIncome), metrics.SourceTransfer).Inc()
	if uc.sched != nil {
		uc.sched.Schedule()
	}

	uc.logger.Info().
		Str("from", input.FromAccountID).
		Str("to", input.ToAccountID).
		Str("amount", input.Amount.String()).
		Msg("transfer completed")

	return &TransferResult{Expense: expense, Income: income}, nil
}
