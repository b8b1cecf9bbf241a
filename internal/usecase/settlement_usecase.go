package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/infrastructure/metrics"
)

// SettlementUseCase is the bridge between the order lifecycle and the ledger.
// A transition into completed posts one automatic income transaction, updates
// the customer aggregates and credits the account implied by the payment
// method, all inside one database transaction.
//
// The guard is "has this order ever been settled", not "is it currently
// completed": completed -> cancelled -> completed books revenue exactly once.
type SettlementUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	customerRepo    CustomerRepository
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
	sched           Scheduler
	logger          zerolog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
	customerRepo CustomerRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
	sched Scheduler,
	logger zerolog.Logger,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		idGen:           idGen,
		retrier:         retrier,
		metrics:         m,
		sched:           sched,
		logger:          logger,
	}
}

// OnOrderStatusChange consumes one order-lifecycle transition. Only the
// transition into completed posts; everything else is a no-op for the ledger.
// Cancellation of a settled order is logged for manual reconciliation, never
// auto-reversed.
func (uc *SettlementUseCase) OnOrderStatusChange(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error) {
	if change.NewStatus != domain.OrderStatusCompleted {
		if change.NewStatus == domain.OrderStatusCancelled {
			settled, err := uc.transactionRepo.ExistsAutomaticForOrder(ctx, change.OrderID)
			if err == nil && settled {
				uc.logger.Warn().Str("order_id", change.OrderID).
					Msg("cancelled order has a posted settlement, manual reconciliation required")
			}
		}
		uc.metrics.SettlementsSkipped.WithLabelValues("not_completed").Inc()
		return nil, nil
	}

	if change.PreviousStatus == domain.OrderStatusCompleted {
		uc.metrics.SettlementsSkipped.WithLabelValues("already_completed").Inc()
		return nil, nil
	}

	return uc.post(ctx, postInput{
		orderID:       change.OrderID,
		amount:        change.TotalAmount,
		customerPhone: change.CustomerPhone,
		customerName:  change.CustomerName,
		paymentMethod: change.PaymentMethod,
		description:   "Оплата заказа №" + change.OrderID,
	})
}

// OnSaleCompleted consumes a point-of-sale settlement: the same posting as a
// completed order, without a prior order lifecycle.
func (uc *SettlementUseCase) OnSaleCompleted(ctx context.Context, sale domain.SaleEvent) (*domain.Transaction, error) {
	return uc.post(ctx, postInput{
		orderID:       sale.OrderID,
		amount:        sale.TotalAmount,
		customerPhone: sale.CustomerPhone,
		customerName:  sale.CustomerName,
		paymentMethod: sale.PaymentMethod,
		description:   "Продажа №" + sale.OrderID,
	})
}

type postInput struct {
	orderID       string
	amount        decimal.Decimal
	customerPhone string
	customerName  string
	paymentMethod domain.PaymentMethod
	description   string
}

func (uc *SettlementUseCase) post(ctx context.Context, input postInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.amount); err != nil {
		return nil, err
	}

	// Fast path. The partial unique index on (order_id) WHERE is_automatic
	// backstops this check when two callbacks for the same order race.
	settled, err := uc.transactionRepo.ExistsAutomaticForOrder(ctx, input.orderID)
	if err != nil {
		return nil, err
	}
	if settled {
		uc.metrics.SettlementsSkipped.WithLabelValues("already_settled").Inc()
		uc.logger.Info().Str("order_id", input.orderID).Msg("order already settled, skipping")
		return nil, domain.ErrAlreadySettled
	}

	salesCategory, err := uc.categoryRepo.GetByNameAndType(ctx, domain.CategorySales, domain.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	if name := domain.AccountForPaymentMethod(input.paymentMethod); name != "" {
		account, err = uc.accountRepo.GetByName(ctx, name)
		if err != nil && err != domain.ErrAccountNotFound {
			return nil, err
		}
		// A missing default account leaves the posting unlinked rather than
		// failing the order callback.
		if err == domain.ErrAccountNotFound {
			uc.logger.Warn().Str("account", name).Str("order_id", input.orderID).
				Msg("default account missing, posting without account")
			account = nil
		}
	}

	var txn *domain.Transaction

	operation := func() error {
		now := time.Now().UTC()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		customer, err := uc.customerRepo.RecordOrder(ctx, tx, input.customerPhone, input.customerName, input.amount, now)
		if err != nil {
			return err
		}

		txn = &domain.Transaction{
			ID:            uc.idGen.Generate(),
			Type:          domain.TransactionTypeIncome,
			CategoryID:    &salesCategory.ID,
			Amount:        input.amount,
			Description:   input.description,
			OrderID:       &input.orderID,
			CustomerID:    &customer.ID,
			Date:          now,
			PaymentMethod: input.paymentMethod,
			IsAutomatic:   true,
			CreatedAt:     now,
		}
		if account != nil {
			txn.AccountID = &account.ID
		}

		if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
			return err
		}

		if account != nil {
			if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, account.ID, input.amount, now); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			// Lost the insert race against a concurrent callback for the
			// same order.
			uc.metrics.SettlementsSkipped.WithLabelValues("already_settled").Inc()
			uc.logger.Info().Str("order_id", input.orderID).Msg("order settled concurrently, skipping")
			return nil, domain.ErrAlreadySettled
		}
		return nil, err
	}

	uc.metrics.SettlementsPosted.Inc()
	uc.metrics.TransactionsCreated.WithLabelValues(string(domain.TransactionTypeIncome), metrics.SourceSettlement).Inc()
	if uc.sched != nil {
		uc.sched.Schedule()
	}

	uc.logger.Info().
		Str("order_id", input.orderID).
		Str("amount", input.amount.String()).
		Str("payment_method", string(input.paymentMethod)).
		Msg("order settled")

	return txn, nil
}
