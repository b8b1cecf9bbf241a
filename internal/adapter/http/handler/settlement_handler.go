package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/metalbaza/finledger/internal/adapter/http/dto"
	"github.com/metalbaza/finledger/internal/domain"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	OnOrderStatusChange(ctx context.Context, change domain.OrderStatusChange) (*domain.Transaction, error)
	OnSaleCompleted(ctx context.Context, sale domain.SaleEvent) (*domain.Transaction, error)
}

// SettlementHandler receives order lifecycle callbacks from the storefront.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// OrderStatus handles an order status transition. A transition into completed
// posts revenue once; every other transition is acknowledged without posting.
// A repeated completion returns 200 with no body rather than an error, so the
// order module can fire callbacks at-least-once.
func (h *SettlementHandler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderStatusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.settlementUC.OnOrderStatusChange(r.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "already_settled"})
			return
		}
		writeError(w, mapDomainError(err), "failed to process status change", err.Error())
		return
	}

	if txn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "skipped"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Sale handles a point-of-sale completion.
func (h *SettlementHandler) Sale(w http.ResponseWriter, r *http.Request) {
	var req dto.SaleEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.settlementUC.OnSaleCompleted(r.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "already_settled"})
			return
		}
		writeError(w, mapDomainError(err), "failed to process sale", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}
