package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/adapter/http/dto"
	"github.com/metalbaza/finledger/internal/domain"
)

type settlementServiceStub struct {
	orderStatusFn func(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error)
	saleFn        func(ctx context.Context, sale domain.SaleEvent) (*domain.Transaction, error)
}

func (s *settlementServiceStub) OnOrderStatusChange(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error) {
	return s.orderStatusFn(ctx, change)
}

func (s *settlementServiceStub) OnSaleCompleted(ctx context.Context, sale domain.SaleEvent) (*domain.Transaction, error) {
	return s.saleFn(ctx, sale)
}

func orderStatusBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(dto.OrderStatusChangeRequest{
		OrderID:        "order-1",
		TotalAmount:    decimal.NewFromInt(2500),
		CustomerPhone:  "+79990001122",
		CustomerName:   "Иван",
		PreviousStatus: "processing",
		NewStatus:      "completed",
		PaymentMethod:  "card",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(body)
}

func TestSettlementHandler_OrderStatus_PostsRevenue(t *testing.T) {
	var captured domain.OrderStatusChange
	handler := NewSettlementHandler(&settlementServiceStub{
		orderStatusFn: func(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error) {
			captured = change
			return &domain.Transaction{ID: "txn-1", Type: domain.TransactionTypeIncome, Amount: change.TotalAmount}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/settlements/order-status", orderStatusBody(t))
	rec := httptest.NewRecorder()

	handler.OrderStatus(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OrderID != "order-1" || captured.NewStatus != domain.OrderStatusCompleted {
		t.Fatalf("expected change to match request, got %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "txn-1" {
		t.Fatalf("expected transaction txn-1, got %s", resp.ID)
	}
}

func TestSettlementHandler_OrderStatus_AlreadySettled(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		orderStatusFn: func(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error) {
			return nil, domain.ErrAlreadySettled
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/settlements/order-status", orderStatusBody(t))
	rec := httptest.NewRecorder()

	handler.OrderStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a repeated completion, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "already_settled" {
		t.Fatalf("expected already_settled, got %+v", resp)
	}
}

func TestSettlementHandler_OrderStatus_NonCompletionSkipped(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		orderStatusFn: func(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/settlements/order-status", orderStatusBody(t))
	rec := httptest.NewRecorder()

	handler.OrderStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "skipped" {
		t.Fatalf("expected skipped, got %+v", resp)
	}
}

func TestSettlementHandler_Sale_Success(t *testing.T) {
	var captured domain.SaleEvent
	handler := NewSettlementHandler(&settlementServiceStub{
		saleFn: func(ctx context.Context, sale domain.SaleEvent) (*domain.Transaction, error) {
			captured = sale
			return &domain.Transaction{ID: "txn-2", Type: domain.TransactionTypeIncome, Amount: sale.TotalAmount}, nil
		},
	})

	body, _ := json.Marshal(dto.SaleEventRequest{
		OrderID:       "sale-1",
		TotalAmount:   decimal.NewFromInt(700),
		PaymentMethod: "cash",
	})
	req := httptest.NewRequest(http.MethodPost, "/settlements/sale", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Sale(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.OrderID != "sale-1" || captured.PaymentMethod != domain.PaymentMethodCash {
		t.Fatalf("expected sale to match request, got %+v", captured)
	}
}

func TestSettlementHandler_Sale_InvalidJSON(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		saleFn: func(ctx context.Context, sale domain.SaleEvent) (*domain.Transaction, error) {
			t.Fatal("OnSaleCompleted should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/settlements/sale", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	handler.Sale(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
