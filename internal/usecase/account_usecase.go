package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
)

// AccountUseCase handles account ledger business logic.
type AccountUseCase struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	logger          zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, transactionRepo TransactionRepository, idGen IDGenerator, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		logger:          logger,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
	SortOrder      int
}

// CreateAccount creates a new account with its initial balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !domain.ValidAccountType(input.Type) {
		return nil, domain.ErrInvalidAccountType
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Type:      input.Type,
		Balance:   input.InitialBalance,
		IsActive:  true,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts ordered by sort order.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, activeOnly bool) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, activeOnly)
}

// UpdateAccountInput represents a partial account update. Balance is absent on
// purpose: balances change only through postings.
type UpdateAccountInput struct {
	Name      *string
	Type      *domain.AccountType
	IsActive  *bool
	SortOrder *int
}

// UpdateAccount applies a partial update to an account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		account.Name = strings.TrimSpace(*input.Name)
	}

	if input.Type != nil {
		if !domain.ValidAccountType(*input.Type) {
			return nil, domain.ErrInvalidAccountType
		}
		account.Type = *input.Type
	}

	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if input.SortOrder != nil {
		account.SortOrder = *input.SortOrder
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account. An account that has transactions is
// deactivated instead, so the history it anchors stays intact.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.transactionRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		uc.logger.Info().Str("account_id", id).Int64("transactions", count).
			Msg("account has transactions, deactivating instead of deleting")
		return uc.accountRepo.Deactivate(ctx, id, time.Now().UTC())
	}

	return uc.accountRepo.Delete(ctx, id)
}

// InitDefaults seeds the default account set. Existing names are left alone,
// so the call is safe on every process start.
func (uc *AccountUseCase) InitDefaults(ctx context.Context) error {
	now := time.Now().UTC()

	for _, seed := range domain.DefaultAccounts() {
		_, err := uc.accountRepo.GetByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if err != domain.ErrAccountNotFound {
			return err
		}

		account := seed
		account.ID = uc.idGen.Generate()
		account.Balance = decimal.Zero
		account.IsActive = true
		account.CreatedAt = now
		account.UpdatedAt = now

		if err := uc.accountRepo.Create(ctx, &account); err != nil {
			return err
		}

		uc.logger.Info().Str("name", account.Name).Msg("seeded default account")
	}

	return nil
}
