package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
)

func TestCreateAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateAccountRequest{
		Name:           "Касса",
		Type:           "cash",
		InitialBalance: decimal.RequireFromString("100.50"),
		SortOrder:      3,
	}

	got := req.ToUseCaseInput()

	if got.Name != "Касса" || got.Type != domain.AccountTypeCash || got.SortOrder != 3 {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
	if !got.InitialBalance.Equal(decimal.RequireFromString("100.50")) {
		t.Fatalf("expected initial balance 100.50, got %s", got.InitialBalance)
	}
}

func TestUpdateAccountRequest_ToUseCaseInput(t *testing.T) {
	name := "Банк"
	typ := "bank"
	active := false

	req := &UpdateAccountRequest{Name: &name, Type: &typ, IsActive: &active}
	got := req.ToUseCaseInput()

	if got.Name == nil || *got.Name != name {
		t.Fatalf("expected name pointer carried, got %+v", got)
	}
	if got.Type == nil || *got.Type != domain.AccountTypeBank {
		t.Fatalf("expected type converted, got %+v", got)
	}
	if got.IsActive == nil || *got.IsActive {
		t.Fatalf("expected is_active=false carried, got %+v", got)
	}
	if got.SortOrder != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", got)
	}
}

func TestCreateTransactionRequest_ToUseCaseInput(t *testing.T) {
	date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	categoryID := "cat-1"

	req := &CreateTransactionRequest{
		Type:          "expense",
		CategoryID:    &categoryID,
		Amount:        decimal.RequireFromString("250"),
		Description:   "металл",
		Date:          &date,
		PaymentMethod: "card",
		Metadata:      map[string]any{"supplier": "ООО Прокат"},
	}

	got := req.ToUseCaseInput()

	if got.Type != domain.TransactionTypeExpense || got.PaymentMethod != domain.PaymentMethodCard {
		t.Fatalf("expected enums converted, got %+v", got)
	}
	if got.CategoryID == nil || *got.CategoryID != categoryID {
		t.Fatalf("expected category carried, got %+v", got)
	}
	if !got.Date.Equal(date) {
		t.Fatalf("expected date %v, got %v", date, got.Date)
	}
	if got.Metadata["supplier"] != "ООО Прокат" {
		t.Fatalf("expected metadata carried, got %+v", got.Metadata)
	}
}

func TestCreateTransactionRequest_ToUseCaseInput_NoDate(t *testing.T) {
	req := &CreateTransactionRequest{
		Type:          "income",
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: "cash",
	}

	got := req.ToUseCaseInput()
	if !got.Date.IsZero() {
		t.Fatalf("expected zero date when omitted, got %v", got.Date)
	}
}

func TestUpdateTransactionRequest_ToUseCaseInput(t *testing.T) {
	method := "transfer"
	typ := "income"
	amount := decimal.NewFromInt(999)

	req := &UpdateTransactionRequest{
		PaymentMethod:  &method,
		Type:           &typ,
		Amount:         &amount,
		RemoveCategory: true,
	}

	got := req.ToUseCaseInput()

	if got.PaymentMethod == nil || *got.PaymentMethod != domain.PaymentMethodTransfer {
		t.Fatalf("expected payment method converted, got %+v", got)
	}
	if got.Type == nil || *got.Type != domain.TransactionTypeIncome {
		t.Fatalf("expected type converted, got %+v", got)
	}
	if got.Amount == nil || !got.Amount.Equal(amount) {
		t.Fatalf("expected amount carried so the use case can reject it, got %+v", got)
	}
	if !got.RemoveCategory {
		t.Fatalf("expected remove_category carried, got %+v", got)
	}
}

func TestOrderStatusChangeRequest_ToDomain(t *testing.T) {
	req := &OrderStatusChangeRequest{
		OrderID:        "order-1",
		TotalAmount:    decimal.RequireFromString("2500.00"),
		CustomerPhone:  "+79990001122",
		CustomerName:   "Иван",
		PreviousStatus: "processing",
		NewStatus:      "completed",
		PaymentMethod:  "card",
	}

	got := req.ToDomain()

	if got.OrderID != "order-1" || got.NewStatus != domain.OrderStatusCompleted {
		t.Fatalf("ToDomain() = %+v", got)
	}
	if got.PreviousStatus != domain.OrderStatusProcessing || got.PaymentMethod != domain.PaymentMethodCard {
		t.Fatalf("expected enums converted, got %+v", got)
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("expected total amount carried, got %s", got.TotalAmount)
	}
}

func TestSaleEventRequest_ToDomain(t *testing.T) {
	req := &SaleEventRequest{
		OrderID:       "sale-1",
		TotalAmount:   decimal.NewFromInt(700),
		CustomerPhone: "+79990001122",
		PaymentMethod: "cash",
	}

	got := req.ToDomain()

	if got.OrderID != "sale-1" || got.PaymentMethod != domain.PaymentMethodCash {
		t.Fatalf("ToDomain() = %+v", got)
	}
	if !got.TotalAmount.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected total amount carried, got %s", got.TotalAmount)
	}
}
