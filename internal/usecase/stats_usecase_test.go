package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
	"github.com/metalbaza/finledger/internal/usecase/mocks"
)

func TestStatsUseCase_Overview_CacheMissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsRepo := mocks.NewMockStatsRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)
	uc := usecase.NewStatsUseCase(statsRepo, cache, testMetrics(), zerolog.Nop())

	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	overview := &domain.StatsOverview{
		From:         from,
		To:           to,
		TotalIncome:  decimal.NewFromInt(50000),
		TotalExpense: decimal.NewFromInt(20000),
		Profit:       decimal.NewFromInt(30000),
	}

	// Miss: version lookup, overview lookup, repo query, cache write.
	cache.EXPECT().Get(ctx, "stats:version").Return(nil, errors.New("redis: nil")).Times(2)
	cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, errors.New("redis: nil"))
	statsRepo.EXPECT().Overview(ctx, from, to).Return(overview, nil)

	var cachedKey string
	var cachedValue []byte
	cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), 5*time.Minute).
		DoAndReturn(func(_ context.Context, key string, value []byte, _ time.Duration) error {
			cachedKey = key
			cachedValue = value
			return nil
		})

	got, err := uc.Overview(ctx, from, to)
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	if !got.Profit.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("profit = %s, want 30000", got.Profit)
	}

	// Hit: the repo is not consulted again.
	cache.EXPECT().Get(ctx, cachedKey).Return(cachedValue, nil)

	got, err = uc.Overview(ctx, from, to)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if !got.TotalIncome.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("cached income = %s, want 50000", got.TotalIncome)
	}
}

func TestStatsUseCase_Overview_DegradesToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsRepo := mocks.NewMockStatsRepository(ctrl)
	uc := usecase.NewStatsUseCase(statsRepo, nil, testMetrics(), zerolog.Nop())

	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	statsRepo.EXPECT().Overview(ctx, from, to).Return(nil, domain.ErrStoreUnavailable)

	got, err := uc.Overview(ctx, from, to)
	if err != nil {
		t.Fatalf("store failure must not surface: %v", err)
	}
	if !got.TotalIncome.Equal(decimal.Zero) || !got.TotalExpense.Equal(decimal.Zero) || !got.Profit.Equal(decimal.Zero) {
		t.Errorf("expected zeroed aggregates, got %+v", got)
	}
}

func TestStatsUseCase_ByPeriod_GranularityFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsRepo := mocks.NewMockStatsRepository(ctrl)
	uc := usecase.NewStatsUseCase(statsRepo, nil, testMetrics(), zerolog.Nop())

	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	// Unknown granularity falls back to day.
	statsRepo.EXPECT().ByPeriod(ctx, from, to, usecase.GranularityDay).Return([]*domain.PeriodStat{}, nil)
	if _, err := uc.ByPeriod(ctx, from, to, "week"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statsRepo.EXPECT().ByPeriod(ctx, from, to, usecase.GranularityMonth).Return(nil, errors.New("query timeout"))
	stats, err := uc.ByPeriod(ctx, from, to, usecase.GranularityMonth)
	if err != nil {
		t.Fatalf("store failure must not surface: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected empty result on failure, got %d", len(stats))
	}
}

func TestStatsUseCase_ByCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsRepo := mocks.NewMockStatsRepository(ctrl)
	uc := usecase.NewStatsUseCase(statsRepo, nil, testMetrics(), zerolog.Nop())

	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	if _, err := uc.ByCategory(ctx, "both", from, to); err != domain.ErrInvalidTransactionType {
		t.Errorf("error = %v, want ErrInvalidTransactionType", err)
	}

	statsRepo.EXPECT().ByCategory(ctx, domain.TransactionTypeExpense, from, to).Return([]*domain.CategoryStat{
		{CategoryName: "Материалы", Total: decimal.NewFromInt(7000), Count: 3},
	}, nil)

	stats, err := uc.ByCategory(ctx, domain.TransactionTypeExpense, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 1 || stats[0].CategoryName != "Материалы" {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStatsUseCase_Recent_ClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsRepo := mocks.NewMockStatsRepository(ctrl)
	uc := usecase.NewStatsUseCase(statsRepo, nil, testMetrics(), zerolog.Nop())

	ctx := context.Background()

	// Zero limit is replaced by the default page size.
	statsRepo.EXPECT().Recent(ctx, 50).Return([]*domain.Transaction{}, nil)
	if _, err := uc.Recent(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statsRepo.EXPECT().Recent(ctx, 500).Return([]*domain.Transaction{}, nil)
	if _, err := uc.Recent(ctx, 10000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatsUseCase_InvalidateCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsRepo := mocks.NewMockStatsRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)
	uc := usecase.NewStatsUseCase(statsRepo, cache, testMetrics(), zerolog.Nop())

	ctx := context.Background()

	var bumped []byte
	cache.EXPECT().Set(ctx, "stats:version", gomock.Any(), time.Duration(0)).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			bumped = value
			return nil
		})

	uc.InvalidateCache(ctx)

	if len(bumped) == 0 {
		t.Fatal("version key not bumped")
	}

	// Subsequent overview lookups must build their key from the new version.
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	data, _ := json.Marshal(&domain.StatsOverview{From: from, To: to})
	cache.EXPECT().Get(ctx, "stats:version").Return(bumped, nil)
	cache.EXPECT().Get(ctx, "stats:overview:"+string(bumped)+":"+
		"1704067200:1704153600").Return(data, nil)

	if _, err := uc.Overview(ctx, from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
