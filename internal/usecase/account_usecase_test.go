package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
	"github.com/metalbaza/finledger/internal/usecase/mocks"
)

func newAccountUseCase(accountRepo *mocks.MockAccountRepository, transactionRepo *mocks.MockTransactionRepository) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(accountRepo, transactionRepo, mocks.NewMockIDGenerator(), zerolog.Nop())
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(accountRepo, mocks.NewMockTransactionRepository())

	account, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name:           "Касса",
		Type:           domain.AccountTypeCash,
		InitialBalance: decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Balance.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("balance = %s, want 10000", account.Balance)
	}
	if !account.IsActive {
		t.Error("new account must be active")
	}

	if _, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: "x", Type: "wallet"}); err != domain.ErrInvalidAccountType {
		t.Errorf("invalid type: error = %v, want ErrInvalidAccountType", err)
	}

	if _, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: "  ", Type: domain.AccountTypeCash}); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("blank name: error = %v, want ErrInvalidName", err)
	}
}

func TestAccountUseCase_Delete_SoftWhenReferenced(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := newAccountUseCase(accountRepo, transactionRepo)

	account := &domain.Account{ID: "acc-1", Name: "Касса", IsActive: true}
	accountRepo.Create(ctx, account)

	accountID := "acc-1"
	transactionRepo.Create(ctx, &domain.Transaction{ID: "txn-1", AccountID: &accountID, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(1)})

	if err := uc.DeleteAccount(ctx, "acc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Soft delete: the account survives, deactivated.
	got, err := accountRepo.GetByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("account was hard-deleted: %v", err)
	}
	if got.IsActive {
		t.Error("account should be deactivated")
	}
}

func TestAccountUseCase_Delete_HardWhenUnreferenced(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(accountRepo, mocks.NewMockTransactionRepository())

	accountRepo.Create(ctx, &domain.Account{ID: "acc-1", Name: "Касса", IsActive: true})

	if err := uc.DeleteAccount(ctx, "acc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := accountRepo.GetByID(ctx, "acc-1"); err != domain.ErrAccountNotFound {
		t.Errorf("expected hard delete, got %v", err)
	}
}

func TestAccountUseCase_InitDefaults_Idempotent(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(accountRepo, mocks.NewMockTransactionRepository())

	if err := uc.InitDefaults(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := uc.InitDefaults(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	accounts, _ := accountRepo.List(ctx, false)
	if len(accounts) != 3 {
		t.Errorf("expected 3 seeded accounts, got %d", len(accounts))
	}

	names := map[string]bool{}
	for _, a := range accounts {
		if names[a.Name] {
			t.Errorf("duplicate seeded account %q", a.Name)
		}
		names[a.Name] = true
		if !a.Balance.Equal(decimal.Zero) {
			t.Errorf("seeded account %q must start at zero, got %s", a.Name, a.Balance)
		}
	}
}

func TestAccountUseCase_Update_Partial(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(accountRepo, mocks.NewMockTransactionRepository())

	accountRepo.Create(ctx, &domain.Account{ID: "acc-1", Name: "Касса", Type: domain.AccountTypeCash, Balance: decimal.NewFromInt(500), IsActive: true})

	name := "Касса магазина"
	updated, err := uc.UpdateAccount(ctx, "acc-1", usecase.UpdateAccountInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != name {
		t.Errorf("name = %q, want %q", updated.Name, name)
	}
	if !updated.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("update must not touch the balance, got %s", updated.Balance)
	}
}
