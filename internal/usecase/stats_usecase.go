package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/infrastructure/metrics"
)

// Stats granularities for ByPeriod.
const (
	GranularityDay   = "day"
	GranularityMonth = "month"
)

const (
	statsVersionKey  = "stats:version"
	statsOverviewTTL = 5 * time.Minute
)

// StatsUseCase is the read-only reporting side of the ledger. Overview results
// are cached; the debounce scheduler calls InvalidateCache after a burst of
// ledger mutations settles. Reads degrade to zeroed aggregates when the store
// is unavailable.
type StatsUseCase struct {
	statsRepo StatsRepository
	cache     Cache
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(statsRepo StatsRepository, cache Cache, m *metrics.Metrics, logger zerolog.Logger) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cache:     cache,
		metrics:   m,
		logger:    logger,
	}
}

// Overview returns income, expense and profit for the date range.
func (uc *StatsUseCase) Overview(ctx context.Context, from, to time.Time) (*domain.StatsOverview, error) {
	key := uc.overviewKey(ctx, from, to)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached domain.StatsOverview
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	overview, err := uc.statsRepo.Overview(ctx, from, to)
	if err != nil {
		uc.logger.Error().Err(err).Msg("stats overview query failed, returning zeroed aggregates")
		return &domain.StatsOverview{
			From:         from,
			To:           to,
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
			Profit:       decimal.Zero,
		}, nil
	}

	if uc.cache != nil {
		if data, err := json.Marshal(overview); err == nil {
			_ = uc.cache.Set(ctx, key, data, statsOverviewTTL)
		}
	}

	return overview, nil
}

// ByPeriod returns per-day or per-month income/expense buckets.
func (uc *StatsUseCase) ByPeriod(ctx context.Context, from, to time.Time, granularity string) ([]*domain.PeriodStat, error) {
	if granularity != GranularityDay && granularity != GranularityMonth {
		granularity = GranularityDay
	}

	stats, err := uc.statsRepo.ByPeriod(ctx, from, to, granularity)
	if err != nil {
		uc.logger.Error().Err(err).Msg("stats by-period query failed, returning empty result")
		return []*domain.PeriodStat{}, nil
	}

	return stats, nil
}

// ByCategory returns per-category totals for one transaction direction.
func (uc *StatsUseCase) ByCategory(ctx context.Context, typ domain.TransactionType, from, to time.Time) ([]*domain.CategoryStat, error) {
	if !domain.ValidTransactionType(typ) {
		return nil, domain.ErrInvalidTransactionType
	}

	stats, err := uc.statsRepo.ByCategory(ctx, typ, from, to)
	if err != nil {
		uc.logger.Error().Err(err).Msg("stats by-category query failed, returning empty result")
		return []*domain.CategoryStat{}, nil
	}

	return stats, nil
}

// Recent returns the newest transactions for the dashboard feed.
func (uc *StatsUseCase) Recent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	limit, _ = domain.ValidatePagination(limit, 0)

	txns, err := uc.statsRepo.Recent(ctx, limit)
	if err != nil {
		uc.logger.Error().Err(err).Msg("recent transactions query failed, returning empty result")
		return []*domain.Transaction{}, nil
	}

	return txns, nil
}

// InvalidateCache bumps the cache version so every cached overview is stale.
// Wired as the debounce scheduler's callback.
func (uc *StatsUseCase) InvalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	version := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := uc.cache.Set(ctx, statsVersionKey, []byte(version), 0); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to bump stats cache version")
		return
	}

	uc.metrics.StatsCacheDrops.Inc()
}

func (uc *StatsUseCase) overviewKey(ctx context.Context, from, to time.Time) string {
	version := "0"
	if uc.cache != nil {
		if v, err := uc.cache.Get(ctx, statsVersionKey); err == nil && len(v) > 0 {
			version = string(v)
		}
	}

	return fmt.Sprintf("stats:overview:%s:%d:%d", version, from.Unix(), to.Unix())
}
