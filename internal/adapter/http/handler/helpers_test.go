package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metalbaza/finledger/internal/adapter/http/dto"
	"github.com/metalbaza/finledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/transactions?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions", nil)
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseDateQuery(t *testing.T) {
	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/stats?from=2024-03-15", nil)
	got := parseDateQuery(req, "from", fallback)
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 15 {
		t.Fatalf("expected bare date to parse, got %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/stats?from=2024-03-15T10:30:00Z", nil)
	got = parseDateQuery(req, "from", fallback)
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Fatalf("expected RFC 3339 to parse, got %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/stats?from=garbage", nil)
	if got := parseDateQuery(req, "from", fallback); !got.Equal(fallback) {
		t.Fatalf("expected fallback for unparseable value, got %v", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"same account transfer", domain.ErrSameAccount, http.StatusBadRequest},
		{"category type mismatch", domain.ErrCategoryTypeMismatch, http.StatusBadRequest},
		{"protected category", domain.ErrProtectedCategory, http.StatusConflict},
		{"posted immutable", domain.ErrPostedImmutable, http.StatusConflict},
		{"already settled", domain.ErrAlreadySettled, http.StatusConflict},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad input", "amount must be positive")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var decoded dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded.Error != "bad input" || decoded.Message != "amount must be positive" {
		t.Fatalf("expected error fields to round-trip, got %+v", decoded)
	}
}
