package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/metalbaza/finledger/internal/adapter/http/dto"
	"github.com/metalbaza/finledger/internal/domain"
)

// StatsService defines the behavior needed by StatsHandler.
type StatsService interface {
	Overview(ctx context.Context, from, to time.Time) (*domain.StatsOverview, error)
	ByPeriod(ctx context.Context, from, to time.Time, granularity string) ([]*domain.PeriodStat, error)
	ByCategory(ctx context.Context, typ domain.TransactionType, from, to time.Time) ([]*domain.CategoryStat, error)
	Recent(ctx context.Context, limit int) ([]*domain.Transaction, error)
}

// StatsHandler handles reporting requests.
type StatsHandler struct {
	statsUC StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC StatsService) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// The default reporting window is the last 30 days.
func (h *StatsHandler) dateRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now().UTC()
	from := parseDateQuery(r, "from", now.AddDate(0, 0, -30))
	to := parseDateQuery(r, "to", now)
	return from, to
}

// Overview returns income, expense and profit for the date range.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	from, to := h.dateRange(r)

	overview, err := h.statsUC.Overview(r.Context(), from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute overview", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsOverviewFromDomain(overview))
}

// ByPeriod returns per-day or per-month buckets (?granularity=day|month).
func (h *StatsHandler) ByPeriod(w http.ResponseWriter, r *http.Request) {
	from, to := h.dateRange(r)
	granularity := r.URL.Query().Get("granularity")

	stats, err := h.statsUC.ByPeriod(r.Context(), from, to, granularity)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute period stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodStatsFromDomain(stats))
}

// ByCategory returns per-category totals for one direction (?type=expense).
func (h *StatsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	from, to := h.dateRange(r)

	typ := domain.TransactionType(r.URL.Query().Get("type"))
	if typ == "" {
		typ = domain.TransactionTypeExpense
	}

	stats, err := h.statsUC.ByCategory(r.Context(), typ, from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute category stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryStatsFromDomain(stats))
}

// Recent returns the newest transactions for the dashboard feed.
func (h *StatsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 10)

	txns, err := h.statsUC.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list recent transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}
