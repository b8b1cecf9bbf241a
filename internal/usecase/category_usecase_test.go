package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
	"github.com/metalbaza/finledger/internal/usecase/mocks"
)

func TestCategoryUseCase_Delete_ProtectsSystemCategories(t *testing.T) {
	ctx := context.Background()
	categoryRepo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(categoryRepo, mocks.NewMockIDGenerator(), zerolog.Nop())

	categoryRepo.Create(ctx, &domain.Category{ID: "cat-sales", Name: domain.CategorySales, Type: domain.TransactionTypeIncome, IsSystem: true, IsActive: true})
	categoryRepo.Create(ctx, &domain.Category{ID: "cat-custom", Name: "Доставка", Type: domain.TransactionTypeExpense, IsActive: true})

	if err := uc.DeleteCategory(ctx, "cat-sales"); err != domain.ErrProtectedCategory {
		t.Errorf("system category delete: error = %v, want ErrProtectedCategory", err)
	}

	if err := uc.DeleteCategory(ctx, "cat-custom"); err != nil {
		t.Errorf("user category delete: %v", err)
	}

	if _, err := categoryRepo.GetByID(ctx, "cat-sales"); err != nil {
		t.Error("system category must survive")
	}
}

func TestCategoryUseCase_Create_Validation(t *testing.T) {
	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator(), zerolog.Nop())

	if _, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{Name: "Прочее", Type: "both"}); err != domain.ErrInvalidTransactionType {
		t.Errorf("error = %v, want ErrInvalidTransactionType", err)
	}

	category, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{Name: "Прочее", Type: domain.TransactionTypeExpense})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Color != domain.DefaultCategoryColor {
		t.Errorf("color = %q, want default %q", category.Color, domain.DefaultCategoryColor)
	}
}

func TestCategoryUseCase_InitDefaults_Idempotent(t *testing.T) {
	ctx := context.Background()
	categoryRepo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(categoryRepo, mocks.NewMockIDGenerator(), zerolog.Nop())

	if err := uc.InitDefaults(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := uc.InitDefaults(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	categories, _ := categoryRepo.List(ctx, nil, false)
	if len(categories) != len(domain.DefaultCategories()) {
		t.Errorf("expected %d categories, got %d", len(domain.DefaultCategories()), len(categories))
	}

	// The system categories the rest of the ledger depends on must exist.
	for _, want := range []struct {
		name string
		typ  domain.TransactionType
	}{
		{domain.CategorySales, domain.TransactionTypeIncome},
		{domain.CategoryOtherIncome, domain.TransactionTypeIncome},
		{domain.CategoryOtherExpense, domain.TransactionTypeExpense},
	} {
		c, err := categoryRepo.GetByNameAndType(ctx, want.name, want.typ)
		if err != nil {
			t.Errorf("missing seeded category %q/%s", want.name, want.typ)
			continue
		}
		if !c.IsSystem {
			t.Errorf("category %q must be system-protected", want.name)
		}
	}
}

func TestCategoryUseCase_List_TypeFilter(t *testing.T) {
	ctx := context.Background()
	categoryRepo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(categoryRepo, mocks.NewMockIDGenerator(), zerolog.Nop())

	categoryRepo.Create(ctx, &domain.Category{ID: "c1", Name: "Продажи", Type: domain.TransactionTypeIncome, IsActive: true})
	categoryRepo.Create(ctx, &domain.Category{ID: "c2", Name: "Материалы", Type: domain.TransactionTypeExpense, IsActive: true})

	income := domain.TransactionTypeIncome
	categories, err := uc.ListCategories(ctx, &income, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 1 || categories[0].Type != domain.TransactionTypeIncome {
		t.Errorf("type filter not applied: %+v", categories)
	}

	bad := domain.TransactionType("both")
	if _, err := uc.ListCategories(ctx, &bad, false); err != domain.ErrInvalidTransactionType {
		t.Errorf("error = %v, want ErrInvalidTransactionType", err)
	}
}
